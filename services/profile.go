package services

import (
	"context"

	"github.com/cppla/subforum/models"
	"github.com/cppla/subforum/store"
)

// Profile is a user's public identity with everything they subscribe to and upvoted.
// Both lists are unpaginated.
type Profile struct {
	User          models.PublicUser     `json:"user"`
	Subscriptions []models.Subscription `json:"subscriptions"`
	Upvotes       []models.Upvote       `json:"upvotes"`
}

// ProfileService assembles user profiles.
type ProfileService struct {
	store *store.Store
	cache Cache
}

// NewProfileService creates a ProfileService. cache may be nil.
func NewProfileService(s *store.Store, cache Cache) *ProfileService {
	return &ProfileService{store: s, cache: orNoCache(cache)}
}

// Profile returns the user's profile or a *store.NotFoundError.
func (p *ProfileService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	key := profileKey(userID)
	var cached Profile
	if p.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := store.Get[models.User](ctx, p.store, userID)
	if err != nil {
		return nil, err
	}
	subs, err := p.store.SubscriptionsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	votes, err := p.store.UpvotesOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &Profile{
		User:          user.Public(),
		Subscriptions: subs,
		Upvotes:       votes,
	}
	p.cache.SetJSON(ctx, key, out)
	return out, nil
}
