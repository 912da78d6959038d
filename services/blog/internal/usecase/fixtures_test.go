package usecase

import (
	"io"
	"testing"
	"time"

	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadFile(key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockImageStorage) KeyFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishNotificationTask(routingKey string, task queue.Task) error {
	args := m.Called(routingKey, task)
	return args.Error(0)
}

type fixture struct {
	store    *memory.Store
	content  ContentUseCase
	posts    PostUseCase
	comments CommentUseCase
	images   *MockImageStorage
	notifier *MockNotifier

	alice entity.User
	bob   entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := policy.FixedClock(now)
	log := logger.New()
	images := &MockImageStorage{}
	notifier := &MockNotifier{}

	f := &fixture{
		store:    store,
		images:   images,
		notifier: notifier,
		alice:    store.AddUser(entity.User{Username: "alice"}),
		bob:      store.AddUser(entity.User{Username: "bob"}),
	}
	f.content = NewContentUseCase(store.Posts(), store.Comments(), store.Categories(), store.Locations(), store.Users(), clock, 2, log)
	f.posts = NewPostUseCase(store.Posts(), store.Users(), store.Categories(), store.Locations(), images, clock, log)
	f.comments = NewCommentUseCase(store.Posts(), store.Comments(), store.Users(), notifier, clock, log)
	return f
}

func as(u entity.User) entity.Principal {
	return entity.Principal{UserID: u.ID, Username: u.Username}
}

func (f *fixture) category(t *testing.T, slug string, published bool) *entity.Category {
	t.Helper()
	c := &entity.Category{Title: slug, Slug: slug, IsPublished: published}
	require.NoError(t, f.store.Categories().Create(c))
	return c
}

func (f *fixture) post(t *testing.T, author entity.User, published bool, pubDate time.Time, category *entity.Category) *entity.Post {
	t.Helper()
	p := &entity.Post{Title: "title", Text: "text", PubDate: pubDate, IsPublished: published, AuthorID: author.ID}
	if category != nil {
		p.CategoryID = &category.ID
	}
	require.NoError(t, f.store.Posts().Create(p))
	return p
}

func boolPtr(b bool) *bool { return &b }
