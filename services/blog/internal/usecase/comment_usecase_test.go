package usecase

import (
	"errors"
	"testing"
	"time"

	"blogicum/pkg/queue"
	"blogicum/services/blog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddComment_NotifiesPostAuthor(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.alice, true, now.Add(-time.Hour), nil)

	f.notifier.On("PublishNotificationTask", queue.RoutingKeyNewComment, mock.MatchedBy(func(task queue.Task) bool {
		return task.UserID == f.alice.ID && task.ActorID == f.bob.ID && task.PostID == post.ID
	})).Return(nil)

	comment, err := f.comments.AddComment(as(f.bob), post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Text)
	assert.Equal(t, "bob", comment.Author.Username)
	assert.True(t, comment.CreatedAt.Equal(now))
	f.notifier.AssertExpectations(t)
}

func TestAddComment_OwnPostSkipsNotification(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.alice, true, now.Add(-time.Hour), nil)

	_, err := f.comments.AddComment(as(f.alice), post.ID, "self")
	require.NoError(t, err)
	f.notifier.AssertNotCalled(t, "PublishNotificationTask", mock.Anything, mock.Anything)
}

func TestAddComment_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.alice, true, now.Add(-time.Hour), nil)
	f.notifier.On("PublishNotificationTask", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.comments.AddComment(as(f.bob), post.ID, "hi")
	assert.NoError(t, err)
}

func TestAddComment_Rules(t *testing.T) {
	f := newFixture(t)
	scheduled := f.post(t, f.alice, true, now.Add(time.Hour), nil)
	live := f.post(t, f.alice, true, now.Add(-time.Hour), nil)

	_, err := f.comments.AddComment(entity.Anonymous, live.ID, "hi")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)

	_, err = f.comments.AddComment(as(f.bob), scheduled.ID, "hi")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = f.comments.AddComment(as(f.alice), scheduled.ID, "own scheduled post")
	assert.NoError(t, err)

	_, err = f.comments.AddComment(as(f.alice), live.ID, "   ")
	assert.True(t, entity.IsValidationError(err))

	ghost := entity.Principal{UserID: "deleted-user", Username: "ghost"}
	_, err = f.comments.AddComment(ghost, live.ID, "hi")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.bob, true, now.Add(-time.Hour), nil)
	f.notifier.On("PublishNotificationTask", mock.Anything, mock.Anything).Return(nil)

	comment, err := f.comments.AddComment(as(f.alice), post.ID, "mine")
	require.NoError(t, err)
	_, err = f.comments.AddComment(as(f.alice), post.ID, "another")
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.DeleteComment(as(f.bob), post.ID, comment.ID), entity.ErrForbidden)

	require.NoError(t, f.comments.DeleteComment(as(f.alice), post.ID, comment.ID))

	detail, err := f.content.GetPost(post.ID, entity.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Post.CommentCount)
}

func TestUpdateComment(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.alice, true, now.Add(-time.Hour), nil)
	other := f.post(t, f.alice, true, now.Add(-time.Hour), nil)

	comment, err := f.comments.AddComment(as(f.alice), post.ID, "first")
	require.NoError(t, err)

	_, err = f.comments.UpdateComment(as(f.bob), post.ID, comment.ID, "hijack")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = f.comments.UpdateComment(as(f.alice), other.ID, comment.ID, "wrong post")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = f.comments.UpdateComment(as(f.alice), post.ID, "missing", "x")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	updated, err := f.comments.UpdateComment(as(f.alice), post.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}
