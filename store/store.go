// Package store persists forum entities through gorm and enforces their
// uniqueness and referential rules.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/subforum/models"
)

// Store is the entity store. It is safe for concurrent use.
type Store struct {
	db  *gorm.DB
	now func() time.Time

	// mu makes each uniqueness check atomic with the insert that follows it.
	mu sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps an open gorm connection. It does not touch the schema; call
// Initialize once at process start.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize creates or extends the schema for every persisted kind.
func (s *Store) Initialize(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Subreddit{},
		&models.Post{},
		&models.Comment{},
		&models.Upvote{},
		&models.Subscription{},
		&models.PageView{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// CreateUser inserts a user. Username and email must be unused.
func (s *Store) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := unique(tx, &models.User{}, "user", "username", u.Username); err != nil {
			return err
		}
		if err := unique(tx, &models.User{}, "user", "email", u.Email); err != nil {
			return err
		}
		u.ID = 0
		u.CreatedAt = s.now()
		return insert(tx, &u, userConflict(u))
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateSubreddit inserts a subreddit. The name must be unused.
func (s *Store) CreateSubreddit(ctx context.Context, sr models.Subreddit) (*models.Subreddit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := unique(tx, &models.Subreddit{}, "subreddit", "name", sr.Name); err != nil {
			return err
		}
		sr.ID = 0
		sr.CreatedAt = s.now()
		return insert(tx, &sr, &ConflictError{Kind: "subreddit", Field: "name", Value: sr.Name})
	})
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// CreatePost inserts a post authored by an existing user into an existing subreddit.
func (s *Store) CreatePost(ctx context.Context, p models.Post) (*models.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := referenced[models.User](tx, "user", p.UserID); err != nil {
			return err
		}
		if err := referenced[models.Subreddit](tx, "subreddit", p.SubredditID); err != nil {
			return err
		}
		p.ID = 0
		p.CreatedAt = s.now()
		return insert(tx, &p, nil)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateComment inserts a comment by an existing user on an existing post.
func (s *Store) CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := referenced[models.Post](tx, "post", c.PostID); err != nil {
			return err
		}
		if err := referenced[models.User](tx, "user", c.UserID); err != nil {
			return err
		}
		c.ID = 0
		c.CreatedAt = s.now()
		return insert(tx, &c, nil)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateUpvote records a vote. A user may upvote a given post only once.
func (s *Store) CreateUpvote(ctx context.Context, v models.Upvote) (*models.Upvote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := fmt.Sprintf("%d/%d", v.UserID, v.PostID)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := referenced[models.Post](tx, "post", v.PostID); err != nil {
			return err
		}
		if err := referenced[models.User](tx, "user", v.UserID); err != nil {
			return err
		}
		taken, err := exists(tx, &models.Upvote{}, map[string]any{"user_id": v.UserID, "post_id": v.PostID})
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Kind: "upvote", Field: "user/post", Value: pair}
		}
		v.ID = 0
		return insert(tx, &v, &ConflictError{Kind: "upvote", Field: "user/post", Value: pair})
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateSubscription subscribes a user to a subreddit. Repeats are rejected.
func (s *Store) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := fmt.Sprintf("%d/%d", sub.UserID, sub.SubredditID)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := referenced[models.User](tx, "user", sub.UserID); err != nil {
			return err
		}
		if err := referenced[models.Subreddit](tx, "subreddit", sub.SubredditID); err != nil {
			return err
		}
		taken, err := exists(tx, &models.Subscription{}, map[string]any{"user_id": sub.UserID, "subreddit_id": sub.SubredditID})
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Kind: "subscription", Field: "user/subreddit", Value: pair}
		}
		sub.ID = 0
		return insert(tx, &sub, &ConflictError{Kind: "subscription", Field: "user/subreddit", Value: pair})
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Get loads one record of kind T by id.
func Get[T any](ctx context.Context, s *Store, id uint) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Kind: kindOf[T](), ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", kindOf[T](), id, err)
	}
	return &rec, nil
}

// ListBy returns every record of kind T whose field equals value, oldest first.
func ListBy[T any](ctx context.Context, s *Store, field string, value any) ([]T, error) {
	var recs []T
	err := s.db.WithContext(ctx).
		Where(map[string]any{field: value}).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", kindOf[T](), field, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// List returns every record of kind T, oldest first.
func List[T any](ctx context.Context, s *Store) ([]T, error) {
	var recs []T
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindOf[T](), err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// Count returns the number of stored records of kind T.
func Count[T any](ctx context.Context, s *Store) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", kindOf[T](), err)
	}
	return n, nil
}

// userConflict is reported when a unique index rejects the insert. The
// translated driver error does not say which index fired.
func userConflict(u models.User) *ConflictError {
	return &ConflictError{Kind: "user", Field: "username/email", Value: u.Username + "/" + u.Email}
}

func unique(tx *gorm.DB, model any, kind, field, value string) error {
	taken, err := exists(tx, model, map[string]any{field: value})
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Kind: kind, Field: field, Value: value}
	}
	return nil
}

func referenced[T any](tx *gorm.DB, kind string, id uint) error {
	ok, err := exists(tx, new(T), map[string]any{"id": id})
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Kind: kind, ID: id}
	}
	return nil
}

func exists(tx *gorm.DB, model any, cond map[string]any) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(cond).Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup %T: %w", model, err)
	}
	return n > 0, nil
}

// insert creates rec and maps a unique index violation to conflict.
func insert(tx *gorm.DB, rec any, conflict *ConflictError) error {
	err := tx.Create(rec).Error
	if err == nil {
		return nil
	}
	if conflict != nil && isDuplicateKey(err) {
		return conflict
	}
	return fmt.Errorf("insert %T: %w", rec, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func kindOf[T any]() string {
	switch any(new(T)).(type) {
	case *models.User:
		return "user"
	case *models.Subreddit:
		return "subreddit"
	case *models.Post:
		return "post"
	case *models.Comment:
		return "comment"
	case *models.Upvote:
		return "upvote"
	case *models.Subscription:
		return "subscription"
	default:
		return fmt.Sprintf("%T", *new(T))
	}
}
