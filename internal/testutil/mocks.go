// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the pokedex-api application.
package testutil

import (
	"context"
	"sync"
	"time"

	"pokedex-api/internal/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	CreateFunc         func(ctx context.Context, user *domain.User) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc  func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	AddFavoriteFunc    func(ctx context.Context, userID, item string) error
	RemoveFavoriteFunc func(ctx context.Context, userID, item string) error
	ListFavoritesFunc  func(ctx context.Context, userID string) ([]string, error)

	// In-memory storage for simple tests
	Users     map[string]*domain.User
	Favorites map[string]map[string]bool // userID -> item -> present
}

// NewMockUserRepository creates a new MockUserRepository with initialized maps
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:     make(map[string]*domain.User),
		Favorites: make(map[string]map[string]bool),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Username == user.Username {
			return domain.ErrUsernameExists
		}
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
	}

	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) AddFavorite(ctx context.Context, userID, item string) error {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, userID, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	if m.Favorites[userID] == nil {
		m.Favorites[userID] = make(map[string]bool)
	}
	m.Favorites[userID][item] = true
	return nil
}

func (m *MockUserRepository) RemoveFavorite(ctx context.Context, userID, item string) error {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, userID, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Favorites[userID], item)
	return nil
}

func (m *MockUserRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	if m.ListFavoritesFunc != nil {
		return m.ListFavoritesFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.Users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	items := make([]string, 0, len(m.Favorites[userID]))
	for item := range m.Favorites[userID] {
		items = append(items, item)
	}
	return items, nil
}

// MockSessionRepository implements domain.SessionRepository for testing.
// Expiry is simulated with a per-token deadline refreshed on Touch.
type MockSessionRepository struct {
	mu sync.RWMutex

	// Function overrides
	CreateFunc func(ctx context.Context, session *domain.Session) error
	TouchFunc  func(ctx context.Context, token string) (*domain.Session, error)
	DeleteFunc func(ctx context.Context, token string) error

	// In-memory storage
	TTL      time.Duration
	Sessions map[string]*domain.Session
	Expiry   map[string]time.Time
}

// NewMockSessionRepository creates a new MockSessionRepository with initialized maps
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		TTL:      time.Hour,
		Sessions: make(map[string]*domain.Session),
		Expiry:   make(map[string]time.Time),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sessions[session.Token] = session
	m.Expiry[session.Token] = time.Now().Add(m.TTL)
	return nil
}

func (m *MockSessionRepository) Touch(ctx context.Context, token string) (*domain.Session, error) {
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.Sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if m.Expiry[token].Before(time.Now()) {
		delete(m.Sessions, token)
		delete(m.Expiry, token)
		return nil, domain.ErrSessionNotFound
	}
	m.Expiry[token] = time.Now().Add(m.TTL)
	return session, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Sessions, token)
	delete(m.Expiry, token)
	return nil
}
