package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
)

// DefaultFeedLimit is the page size used when none, or a non-positive one, is given.
const DefaultFeedLimit = 10

// Page selects the window [Offset, Offset+Limit) of an ordered sequence.
type Page struct {
	Limit  int
	Offset int
}

// ParsePaging reads raw query values. Anything that is not a positive
// limit or a non-negative offset falls back to the defaults.
func ParsePaging(limitStr, offsetStr string) Page {
	page := Page{Limit: DefaultFeedLimit}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		page.Limit = l
	}
	if o, err := strconv.Atoi(offsetStr); err == nil && o > 0 {
		page.Offset = o
	}
	return page
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultFeedLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// FeedService assembles a subreddit's posts newest first.
type FeedService struct {
	store *store.Store
	cache Cache
}

// NewFeedService creates a FeedService. cache may be nil.
func NewFeedService(s *store.Store, cache Cache) *FeedService {
	return &FeedService{store: s, cache: orNoCache(cache)}
}

// Feed returns one page of the subreddit's posts. An unknown subreddit
// yields an empty page, as does an offset past the end.
func (f *FeedService) Feed(ctx context.Context, subredditID uint, page Page) ([]models.Post, error) {
	page = page.normalized()
	key := feedKey(subredditID, page)

	var cached []models.Post
	if f.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	posts, err := f.store.PostsOf(ctx, subredditID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	out := window(posts, page)

	f.cache.SetJSON(ctx, key, out)
	return out, nil
}

// sortNewestFirst orders by creation time descending; equal timestamps
// fall back to the higher id first so the order is total.
func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

func window(posts []models.Post, page Page) []models.Post {
	if page.Offset >= len(posts) {
		return []models.Post{}
	}
	// compare against what remains so a huge limit cannot overflow
	end := len(posts)
	if page.Limit < end-page.Offset {
		end = page.Offset + page.Limit
	}
	return posts[page.Offset:end]
}
