package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pokedex-api/internal/domain"
)

// Constraint names from migrations/schema.sql. The unique indexes are the
// authoritative uniqueness guarantee; the service-level existence checks
// are only a fast path.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// UserRepository implements domain.UserRepository for PostgreSQL. It covers
// both the account rows and the favorites set owned by each account.
type UserRepository struct {
	db                 *sql.DB
	createStmt         *sql.Stmt
	getByIDStmt        *sql.Stmt
	getByUsernameStmt  *sql.Stmt
	getByEmailStmt     *sql.Stmt
	addFavoriteStmt    *sql.Stmt
	removeFavoriteStmt *sql.Stmt
	listFavoritesStmt  *sql.Stmt
}

// NewUserRepository creates a new UserRepository with prepared statements.
// Returns an error if statement preparation fails.
func NewUserRepository(db *sql.DB) (*UserRepository, error) {
	repo := &UserRepository{db: db}

	var err error
	repo.createStmt, err = db.Prepare(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare create statement: %w", err)
	}

	repo.getByIDStmt, err = db.Prepare(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare getByID statement: %w", err)
	}

	repo.getByUsernameStmt, err = db.Prepare(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare getByUsername statement: %w", err)
	}

	repo.getByEmailStmt, err = db.Prepare(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare getByEmail statement: %w", err)
	}

	repo.addFavoriteStmt, err = db.Prepare(`
		INSERT INTO favorites (user_id, item)
		VALUES ($1, $2)
		ON CONFLICT (user_id, item) DO NOTHING
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare addFavorite statement: %w", err)
	}

	repo.removeFavoriteStmt, err = db.Prepare(`
		DELETE FROM favorites
		WHERE user_id = $1 AND item = $2
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare removeFavorite statement: %w", err)
	}

	// LEFT JOIN so a user with no favorites still yields one row; zero
	// rows means the account itself is gone.
	repo.listFavoritesStmt, err = db.Prepare(`
		SELECT f.item
		FROM users u
		LEFT JOIN favorites f ON f.user_id = u.id
		WHERE u.id = $1
		ORDER BY f.item
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare listFavorites statement: %w", err)
	}

	return repo, nil
}

// Create inserts a new user. Unique constraint violations from the store
// are mapped to the same conflict errors the fast-path checks produce.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.createStmt.QueryRowContext(ctx,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err, usernameConstraint) {
			return domain.ErrUsernameExists
		}
		if IsUniqueViolation(err, emailConstraint) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.getByIDStmt.QueryRowContext(ctx, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(r.getByUsernameStmt.QueryRowContext(ctx, username))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.getByEmailStmt.QueryRowContext(ctx, email))
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// AddFavorite inserts an item into the user's favorites set. Inserting an
// item that is already present is a no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, item string) error {
	_, err := r.addFavoriteStmt.ExecContext(ctx, userID, item)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes an item from the user's favorites set. Removing an
// absent item succeeds silently.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, item string) error {
	_, err := r.removeFavoriteStmt.ExecContext(ctx, userID, item)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the user's favorites set. An existing user with no
// favorites yields an empty slice; a missing user yields ErrUserNotFound.
func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.listFavoritesStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	items := make([]string, 0)
	found := false
	for rows.Next() {
		found = true
		var item sql.NullString
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		if item.Valid {
			items = append(items, item.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	if !found {
		return nil, domain.ErrUserNotFound
	}

	return items, nil
}
