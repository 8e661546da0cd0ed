package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// Create creates a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, streak_count,
			last_activity_date, daily_goal, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.Exec(ctx, query,
		u.ID.String(),
		u.Username,
		u.Email,
		u.PasswordHash,
		u.StreakCount,
		u.LastActivityDate,
		u.DailyGoal,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			// The constraint name tells which field collided.
			if strings.Contains(err.Error(), "email") {
				return shared.ErrEmailTaken
			}
			return shared.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID returns a user by internal ID.
func (r *UserRepository) GetByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.getBy(ctx, "id = $1", id.String())
}

// GetByUsername returns a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, streak_count,
			   last_activity_date, daily_goal, created_at, updated_at
		FROM users
		WHERE ` + where

	return r.scanUser(r.conn.QueryRow(ctx, query, arg))
}

// UpdateStreak persists the streak fields.
func (r *UserRepository) UpdateStreak(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET streak_count = $2, last_activity_date = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, query,
		u.ID.String(),
		u.StreakCount,
		u.LastActivityDate,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// UpdateDailyGoal persists the daily goal.
func (r *UserRepository) UpdateDailyGoal(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET daily_goal = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, query, u.ID.String(), u.DailyGoal, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update daily goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}

	return nil
}

// scanUser scans a single user from a row.
func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var (
		u                user.User
		id               string
		lastActivityDate *time.Time
	)

	err := row.Scan(
		&id,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.StreakCount,
		&lastActivityDate,
		&u.DailyGoal,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.ID = user.ID(id)
	if lastActivityDate != nil {
		day := clock.StartOfDay(*lastActivityDate)
		u.LastActivityDate = &day
	}

	return &u, nil
}
