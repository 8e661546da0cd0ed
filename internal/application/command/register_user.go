package command

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lingua-hub/lingua-backend/internal/application/auth"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// Creates the account, initializes the streak to 1 with today as the last
// activity date (signing up counts as activity), and issues a session token.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserCommand contains the registration input.
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string

	// DailyGoal is optional; zero means the default of 5 words per day.
	DailyGoal int
}

// Validate validates the command.
func (c RegisterUserCommand) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("register_user: username is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("register_user: email is required")
	}
	if c.Password == "" {
		return errors.New("register_user: password is required")
	}
	return nil
}

// RegisterUserResult contains the created user and their session token.
type RegisterUserResult struct {
	User  *user.User
	Token string
}

// RegisterUserHandler handles RegisterUserCommand.
type RegisterUserHandler struct {
	users  user.Repository
	tokens auth.TokenStore
	ids    auth.IDGenerator
	clk    clock.Clock
	log    *logger.Logger
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(users user.Repository, tokens auth.TokenStore, ids auth.IDGenerator, clk clock.Clock, log *logger.Logger) *RegisterUserHandler {
	if log == nil {
		log = logger.Default()
	}
	return &RegisterUserHandler{users: users, tokens: tokens, ids: ids, clk: clk, log: log}
}

// Handle creates the account and issues a token.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("user", "Register", shared.ErrInvalidInput, err.Error())
	}

	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(user.NewUserParams{
		ID:           user.ID(h.ids.NewID()),
		Username:     strings.TrimSpace(cmd.Username),
		Email:        strings.TrimSpace(cmd.Email),
		PasswordHash: hash,
		DailyGoal:    cmd.DailyGoal,
		CreatedAt:    h.clk.Now(),
	})
	if err != nil {
		return nil, shared.NewDomainError("user", "Register", shared.ErrInvalidInput, err.Error())
	}

	if err := h.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := h.tokens.Issue(ctx, u.ID, auth.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}

	h.log.Info("user registered",
		logger.UserID(u.ID.String()),
		logger.Username(u.Username))

	return &RegisterUserResult{User: u, Token: token}, nil
}

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
