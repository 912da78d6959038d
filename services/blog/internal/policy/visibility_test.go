package policy

import (
	"testing"
	"time"

	"blogicum/services/blog/internal/entity"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func postWith(published bool, pubDate time.Time, category *entity.Category) *entity.Post {
	p := &entity.Post{ID: "p", AuthorID: "author", IsPublished: published, PubDate: pubDate}
	if category != nil {
		p.CategoryID = strPtr(category.ID)
		p.Category = category
	}
	return p
}

func TestIsLive_Grid(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	liveCat := &entity.Category{ID: "c1", IsPublished: true}
	hiddenCat := &entity.Category{ID: "c2", IsPublished: false}

	for _, published := range []bool{true, false} {
		for _, pubDate := range []time.Time{yesterday, now, tomorrow} {
			for _, cat := range []*entity.Category{nil, liveCat, hiddenCat} {
				post := postWith(published, pubDate, cat)
				want := published && !pubDate.After(now) && (cat == nil || cat.IsPublished)
				assert.Equal(t, want, IsLive(post, now), "published=%v pubDate=%v cat=%v", published, pubDate, cat)
			}
		}
	}
}

func TestIsLive_PublishDateEqualToNow(t *testing.T) {
	assert.True(t, IsLive(postWith(true, now, nil), now))
}

func TestIsLive_CategoryReferencedButNotLoaded(t *testing.T) {
	post := &entity.Post{IsPublished: true, PubDate: now.Add(-time.Hour), CategoryID: strPtr("c1")}
	assert.False(t, IsLive(post, now))
}

func TestIsLive_Nil(t *testing.T) {
	assert.False(t, IsLive(nil, now))
}

func TestFilterLive_IdempotentAndOrdered(t *testing.T) {
	hidden := &entity.Category{ID: "c2", IsPublished: false}
	posts := []*entity.Post{
		{ID: "a", IsPublished: true, PubDate: now.Add(-time.Hour)},
		{ID: "b", IsPublished: false, PubDate: now.Add(-time.Hour)},
		{ID: "c", IsPublished: true, PubDate: now.Add(time.Hour)},
		{ID: "d", IsPublished: true, PubDate: now.Add(-2 * time.Hour), CategoryID: strPtr("c2"), Category: hidden},
		{ID: "e", IsPublished: true, PubDate: now.Add(-3 * time.Hour)},
	}

	once := FilterLive(posts, now)
	twice := FilterLive(once, now)

	assert.Equal(t, once, twice)
	ids := make([]string, 0, len(once))
	for _, p := range once {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "e"}, ids)
}

func TestCanView(t *testing.T) {
	scheduled := postWith(true, now.Add(time.Hour), nil)

	assert.True(t, CanView(entity.Principal{UserID: "author"}, scheduled, now))
	assert.False(t, CanView(entity.Principal{UserID: "other"}, scheduled, now))
	assert.False(t, CanView(entity.Anonymous, scheduled, now))
	assert.True(t, CanView(entity.Anonymous, postWith(true, now.Add(-time.Hour), nil), now))
	assert.False(t, CanView(entity.Anonymous, nil, now))
}

func TestStateOf(t *testing.T) {
	liveCat := &entity.Category{ID: "c1", IsPublished: true}
	hiddenCat := &entity.Category{ID: "c2", IsPublished: false}

	assert.Equal(t, StateDraft, StateOf(postWith(false, now.Add(-time.Hour), liveCat), now))
	assert.Equal(t, StateScheduled, StateOf(postWith(true, now.Add(time.Hour), liveCat), now))
	assert.Equal(t, StateLive, StateOf(postWith(true, now.Add(-time.Hour), liveCat), now))
	assert.Equal(t, StateLive, StateOf(postWith(true, now.Add(-time.Hour), nil), now))
	assert.Equal(t, StateHidden, StateOf(postWith(true, now.Add(-time.Hour), hiddenCat), now))
}

func TestStateOf_ScheduledBecomesLive(t *testing.T) {
	post := postWith(true, now.Add(time.Hour), nil)

	assert.Equal(t, StateScheduled, StateOf(post, now))
	assert.Equal(t, StateLive, StateOf(post, now.Add(2*time.Hour)))
}
