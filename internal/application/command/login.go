package command

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/lingua-hub/lingua-backend/internal/application/auth"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGIN / LOGOUT COMMANDS
// Login verifies credentials, issues a session token, and advances the daily
// streak. The streak step is idempotent per day, so a double-submitted login
// converges to the same state.
// ══════════════════════════════════════════════════════════════════════════════

// LoginCommand contains the credentials.
type LoginCommand struct {
	Username string
	Password string
}

// LoginResult contains the session token and the user with up-to-date streak
// fields.
type LoginResult struct {
	User  *user.User
	Token string
}

// LoginHandler handles LoginCommand.
type LoginHandler struct {
	users  user.Repository
	tokens auth.TokenStore
	clk    clock.Clock
	log    *logger.Logger
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(users user.Repository, tokens auth.TokenStore, clk clock.Clock, log *logger.Logger) *LoginHandler {
	if log == nil {
		log = logger.Default()
	}
	return &LoginHandler{users: users, tokens: tokens, clk: clk, log: log}
}

// Handle authenticates the user, issues a token, and runs the streak update
// for today, persisting it only when something changed.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := h.users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			// Do not leak which part of the credentials failed.
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}

	token, err := h.tokens.Issue(ctx, u.ID, auth.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}

	upd := user.NextStreak(u.ActivityState(), h.clk.Today())
	if upd.Changed {
		u.ApplyStreak(upd, h.clk.Now())
		if err := h.users.UpdateStreak(ctx, u); err != nil {
			return nil, err
		}
		h.log.Info("streak updated on login",
			logger.UserID(u.ID.String()),
			logger.StreakCount(u.StreakCount))
	}

	return &LoginResult{User: u, Token: token}, nil
}

// LogoutCommand revokes a session token.
type LogoutCommand struct {
	Token string
}

// LogoutHandler handles LogoutCommand.
type LogoutHandler struct {
	tokens auth.TokenStore
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(tokens auth.TokenStore) *LogoutHandler {
	return &LogoutHandler{tokens: tokens}
}

// Handle deletes the session token. Revoking an already-revoked token is
// reported as not found but carries no other consequence.
func (h *LogoutHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	return h.tokens.Revoke(ctx, cmd.Token)
}
