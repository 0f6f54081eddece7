package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a new postgres-backed user repository
func NewRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// inserts a user; unique violations surface as *pgconn.PgError
func (r *PostgresRepository) Create(ctx context.Context, req CreateRequest) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryCreate, req.Email, req.Name, req.Age).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Age,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// finds a user by their ID
func (r *PostgresRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Age,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	return &user, nil
}

// finds a user by email, case-insensitively
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Age,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

// returns one page of users ordered by creation time, plus the total count
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Age,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// deletes a user by their ID
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete user %s: %w", userID, pgx.ErrNoRows)
	}

	return nil
}
