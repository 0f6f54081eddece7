package users

import (
	"context"
	"errors"
	"time"
)

// returned when a user with the same email already exists
var ErrDuplicateEmail = errors.New("email already registered")

// stores and loads users; lookups of unknown IDs return an error wrapping pgx.ErrNoRows
type Repository interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	FindByID(ctx context.Context, userID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, int, error)
	Delete(ctx context.Context, userID string) error
}

// represents a registered user
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// contains data for creating a user
type CreateRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Age   int    `json:"age" binding:"gte=0,lte=150"`
}
