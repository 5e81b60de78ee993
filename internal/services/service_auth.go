package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"igram/dto"
	"igram/internal/common"
	"igram/internal/logging"
	"igram/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// CreatorSeed is the account created when no creator exists.
type CreatorSeed struct {
	Username string
	Name     string
	Email    string
	Password string
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	log    logging.Logger
	cost   int
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens TokenIssuer, log logging.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return dto.LoginResponse{}, common.Validation("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return dto.LoginResponse{}, common.NewError(common.ErrInvalidCredentials, "Invalid credentials")
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return dto.LoginResponse{}, common.NewError(common.ErrInvalidCredentials, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("could not sign token: %w", err)
	}

	s.log.Info(ctx, "login", "user_id", user.ID.Hex(), "role", user.Role)
	return dto.LoginResponse{Token: token, User: ToUserView(user)}, nil
}

// Identity resolves the user behind a verified token. A token for a user
// that no longer exists does not authenticate.
func (s *AuthService) Identity(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthenticated("User not found")
		}
		return nil, err
	}
	return u, nil
}

// EnsureCreator creates the seed creator when no creator account exists.
func (s *AuthService) EnsureCreator(ctx context.Context, seed CreatorSeed) (bool, error) {
	_, err := s.users.FindOneByRole(ctx, models.RoleCreator)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, err
	}

	if err := s.createCreator(ctx, seed); err != nil {
		return false, err
	}
	s.log.Info(ctx, "default creator account created", "email", seed.Email, "name", seed.Name)
	return true, nil
}

// ResetCreator removes every creator account and recreates the seed one.
func (s *AuthService) ResetCreator(ctx context.Context, seed CreatorSeed) (int64, error) {
	deleted, err := s.users.DeleteByRole(ctx, models.RoleCreator)
	if err != nil {
		return 0, fmt.Errorf("delete creators: %w", err)
	}
	if err := s.createCreator(ctx, seed); err != nil {
		return deleted, err
	}

	// verify the stored hash round-trips
	if _, err := s.Login(ctx, seed.Email, seed.Password); err != nil {
		return deleted, fmt.Errorf("verify creator login: %w", err)
	}
	return deleted, nil
}

func (s *AuthService) createCreator(ctx context.Context, seed CreatorSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &models.User{
		Username:     seed.Username,
		Name:         seed.Name,
		Email:        strings.ToLower(strings.TrimSpace(seed.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleCreator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("create creator: %w", err)
	}
	return nil
}
