package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pokedex-api/internal/domain"
)

// AuthService owns the account directory and the session lifecycle.
type AuthService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	bcryptCost  int
}

func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bcryptCost:  bcryptCost,
	}
}

// SignUp creates an account and binds a fresh session to it. The existence
// checks are a fast path only; the store's unique indexes are authoritative
// and surface through userRepo.Create as the same conflict errors.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*domain.User, *domain.Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, nil, domain.ErrUsernameExists
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, nil, domain.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login authenticates the credentials and binds a fresh session. Unknown
// username and wrong password collapse into the same error so the response
// does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(password),
	); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout destroys the session. A store failure is reported, not swallowed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// ResolveSession resolves a cookie token to its session, extending the
// rolling TTL. Returns domain.ErrSessionNotFound for absent or expired
// sessions.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	return s.sessionRepo.Touch(ctx, token)
}

// GetUserByID returns the account bound to a resolved session.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) createSession(ctx context.Context, userID string) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
