package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/store/storetest"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i%len(ts)]
		i++
		return t
	}
}

func seedUser(t *testing.T, s *store.Store, name string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func seedSubreddit(t *testing.T, s *store.Store, name string) *models.Subreddit {
	t.Helper()
	sr, err := s.CreateSubreddit(context.Background(), models.Subreddit{Name: name})
	require.NoError(t, err)
	return sr
}

func TestStore_CreateUserAssignsID(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	u1 := seedUser(t, s, "alice")
	u2 := seedUser(t, s, "bob")

	assert.NotZero(t, u1.ID)
	assert.NotEqual(t, u1.ID, u2.ID)
	assert.False(t, u1.CreatedAt.IsZero())

	got, err := store.Get[models.User](ctx, s, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestStore_CreateUserDuplicateUsername(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	seedUser(t, s, "alice")

	_, err := s.CreateUser(ctx, models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)

	users, err := store.ListBy[models.User](ctx, s, "email", "other@example.com")
	require.NoError(t, err)
	assert.Empty(t, users, "conflicting email must not be persisted")
}

func TestStore_CreateUserDuplicateEmail(t *testing.T) {
	s := storetest.New(t)
	seedUser(t, s, "alice")

	_, err := s.CreateUser(context.Background(), models.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "x"})

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestStore_CreateSubredditDuplicateName(t *testing.T) {
	s := storetest.New(t)
	seedSubreddit(t, s, "golang")

	_, err := s.CreateSubreddit(context.Background(), models.Subreddit{Name: "golang"})

	var conflict *store.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestStore_ConcurrentCreateUserSameName(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateUser(ctx, models.User{
				Username:     "racer",
				Email:        fmt.Sprintf("racer%d@example.com", i),
				PasswordHash: "x",
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		var conflict *store.ConflictError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &conflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	total, err := store.Count[models.User](ctx, s)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestStore_ConcurrentCreateSubredditSameName(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateSubreddit(ctx, models.Subreddit{
				Name:        "golang",
				Description: fmt.Sprintf("attempt %d", i),
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		var conflict *store.ConflictError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &conflict):
			conflicts++
			assert.Equal(t, "name", conflict.Field)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	total, err := store.Count[models.Subreddit](ctx, s)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestStore_CreatePostUnknownSubreddit(t *testing.T) {
	s := storetest.New(t)
	u := seedUser(t, s, "alice")

	_, err := s.CreatePost(context.Background(), models.Post{Title: "t", Content: "c", UserID: u.ID, SubredditID: 42})

	var ref *store.ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "subreddit", ref.Kind)
	assert.EqualValues(t, 42, ref.ID)
}

func TestStore_CreatePostUnknownUser(t *testing.T) {
	s := storetest.New(t)
	sr := seedSubreddit(t, s, "golang")

	_, err := s.CreatePost(context.Background(), models.Post{Title: "t", Content: "c", UserID: 7, SubredditID: sr.ID})

	var ref *store.ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "user", ref.Kind)
}

func TestStore_CreatePostUsesClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := storetest.New(t, store.WithClock(fixedClock(at)))
	u := seedUser(t, s, "alice")
	sr := seedSubreddit(t, s, "golang")

	p, err := s.CreatePost(context.Background(), models.Post{Title: "t", Content: "c", UserID: u.ID, SubredditID: sr.ID})
	require.NoError(t, err)
	assert.True(t, p.CreatedAt.Equal(at))

	got, err := store.Get[models.Post](context.Background(), s, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(at))
}

func TestStore_CreateCommentUnknownPost(t *testing.T) {
	s := storetest.New(t)
	u := seedUser(t, s, "alice")

	_, err := s.CreateComment(context.Background(), models.Comment{Content: "hi", PostID: 3, UserID: u.ID})

	var ref *store.ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "post", ref.Kind)
}

func TestStore_UpvoteIsUniquePerUserAndPost(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, s, "alice")
	sr := seedSubreddit(t, s, "golang")
	p, err := s.CreatePost(ctx, models.Post{Title: "t", Content: "c", UserID: u.ID, SubredditID: sr.ID})
	require.NoError(t, err)

	_, err = s.CreateUpvote(ctx, models.Upvote{PostID: p.ID, UserID: u.ID})
	require.NoError(t, err)

	_, err = s.CreateUpvote(ctx, models.Upvote{PostID: p.ID, UserID: u.ID})
	var conflict *store.ConflictError
	assert.ErrorAs(t, err, &conflict)

	n, err := store.Count[models.Upvote](ctx, s)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStore_SubscriptionIsUniquePerUserAndSubreddit(t *testing.T) {
	s := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, s, "alice")
	sr := seedSubreddit(t, s, "golang")

	_, err := s.CreateSubscription(ctx, models.Subscription{UserID: u.ID, SubredditID: sr.ID})
	require.NoError(t, err)

	_, err = s.CreateSubscription(ctx, models.Subscription{UserID: u.ID, SubredditID: sr.ID})
	var conflict *store.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestStore_GetNotFound(t *testing.T) {
	s := storetest.New(t)

	_, err := store.Get[models.Subreddit](context.Background(), s, 99)

	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "subreddit", nf.Kind)
	assert.EqualValues(t, 99, nf.ID)
}

func TestStore_ListByNoMatchesIsEmpty(t *testing.T) {
	s := storetest.New(t)

	posts, err := store.ListBy[models.Post](context.Background(), s, "subreddit_id", uint(5))
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestRequireFields(t *testing.T) {
	assert.NoError(t, store.RequireFields(
		store.Field{Name: "title", Value: "x"},
		store.Field{Name: "user_id", Value: uint(1)},
	))

	err := store.RequireFields(
		store.Field{Name: "user_id", Value: uint(0)},
		store.Field{Name: "title", Value: "ok"},
		store.Field{Name: "content", Value: "   "},
	)
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"user_id", "content"}, ve.Fields)
	assert.Equal(t, "user_id, content are required", ve.Error())
}
