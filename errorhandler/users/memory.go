package users

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// in-memory repository used when no database is configured and in tests
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func (r *MemoryRepository) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, req.Email) {
			return nil, fmt.Errorf("failed to create user: %w", ErrDuplicateEmail)
		}
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Age:       req.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user

	out := *user
	return &out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, pgx.ErrNoRows)
	}

	out := *user
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}

	return nil, fmt.Errorf("failed to find user by email: %w", pgx.ErrNoRows)
}

func (r *MemoryRepository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	all := make([]User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []User{}, total, nil
	}

	end := min(offset+limit, total)

	return all[offset:end], total, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("failed to delete user %s: %w", userID, pgx.ErrNoRows)
	}

	delete(r.users, userID)
	return nil
}
