package services

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/subforum/models"
)

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestFeedService_Windows(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	u := fx.user(t, "alice")
	sr := fx.subreddit(t, "golang")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// inserted out of order on purpose
	fx.postAt(t, base.Add(2*time.Second), sr, u, "t2")
	fx.postAt(t, base.Add(1*time.Second), sr, u, "t1")
	fx.postAt(t, base.Add(3*time.Second), sr, u, "t3")

	tests := []struct {
		name   string
		page   Page
		titles []string
	}{
		{name: "first page", page: Page{Limit: 2, Offset: 0}, titles: []string{"t3", "t2"}},
		{name: "second page", page: Page{Limit: 2, Offset: 2}, titles: []string{"t1"}},
		{name: "past the end", page: Page{Limit: 2, Offset: 5}, titles: []string{}},
		{name: "default limit", page: Page{}, titles: []string{"t3", "t2", "t1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fx.feed.Feed(ctx, sr.ID, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.titles, titles(got))
		})
	}
}

func TestFeedService_TieBreaksOnID(t *testing.T) {
	fx := newFixture(t)
	u := fx.user(t, "alice")
	sr := fx.subreddit(t, "golang")
	at := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	first := fx.postAt(t, at, sr, u, "first")
	second := fx.postAt(t, at, sr, u, "second")
	require.Greater(t, second.ID, first.ID)

	got, err := fx.feed.Feed(context.Background(), sr.ID, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, titles(got))
}

func TestFeedService_OnlyOwnSubreddit(t *testing.T) {
	fx := newFixture(t)
	u := fx.user(t, "alice")
	a := fx.subreddit(t, "a")
	b := fx.subreddit(t, "b")
	fx.postAt(t, time.Now(), a, u, "in a")
	fx.postAt(t, time.Now(), b, u, "in b")

	got, err := fx.feed.Feed(context.Background(), a.ID, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"in a"}, titles(got))
}

func TestFeedService_UnknownSubredditIsEmpty(t *testing.T) {
	fx := newFixture(t)

	got, err := fx.feed.Feed(context.Background(), 12345, Page{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFeedService_CacheInvalidatedByNewPost(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	u := fx.user(t, "alice")
	sr := fx.subreddit(t, "golang")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fx.postAt(t, base, sr, u, "old")

	got, err := fx.feed.Feed(ctx, sr.ID, Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"old"}, titles(got))
	assert.Contains(t, fx.cache.items, feedKey(sr.ID, Page{Limit: 10}))

	fx.postAt(t, base.Add(time.Minute), sr, u, "new")
	assert.Contains(t, fx.cache.invalidated, feedPrefix(sr.ID))

	got, err = fx.feed.Feed(ctx, sr.ID, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, titles(got))
}

func TestParsePaging(t *testing.T) {
	tests := []struct {
		limit, offset string
		want          Page
	}{
		{"", "", Page{Limit: 10, Offset: 0}},
		{"5", "3", Page{Limit: 5, Offset: 3}},
		{"0", "0", Page{Limit: 10, Offset: 0}},
		{"-4", "-1", Page{Limit: 10, Offset: 0}},
		{"abc", "1.5", Page{Limit: 10, Offset: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePaging(tt.limit, tt.offset), "limit=%q offset=%q", tt.limit, tt.offset)
	}
}

func TestWindow(t *testing.T) {
	posts := []models.Post{{ID: 3}, {ID: 2}, {ID: 1}}

	assert.Len(t, window(posts, Page{Limit: 10, Offset: 0}), 3)
	assert.Len(t, window(posts, Page{Limit: 1, Offset: 2}), 1)
	assert.Empty(t, window(posts, Page{Limit: 1, Offset: 3}))

	got := window(posts, Page{Limit: math.MaxInt, Offset: 1})
	require.Len(t, got, 2)
	assert.EqualValues(t, 2, got[0].ID)
}

func TestFeedService_HugeLimit(t *testing.T) {
	fx := newFixture(t)
	u := fx.user(t, "alice")
	sr := fx.subreddit(t, "golang")
	fx.postAt(t, time.Unix(100, 0), sr, u, "old")
	fx.postAt(t, time.Unix(200, 0), sr, u, "new")

	page := ParsePaging(strconv.Itoa(math.MaxInt), "1")
	assert.Equal(t, math.MaxInt, page.Limit)

	var posts []models.Post
	require.NotPanics(t, func() {
		var err error
		posts, err = fx.feed.Feed(context.Background(), sr.ID, page)
		require.NoError(t, err)
	})
	require.Len(t, posts, 1)
	assert.Equal(t, "old", posts[0].Title)
}
