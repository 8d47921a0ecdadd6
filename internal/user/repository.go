package user

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	getUserByID(userID string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	userExistsByLoginOrEmail(login, email string) (*User, error)
	updateUserPassword(userID, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{db: db}
}

const userSelect = `
    SELECT id, email, login, password_hash, created_at, updated_at, is_active
    FROM users
`

func (r *userRepository) createUser(user *User) error {
	user.ID = uuid.NewString()
	query := `
        INSERT INTO users (id, email, login, password_hash, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `
	_, err := r.db.Exec(query, user.ID, user.Email, user.Login, user.PasswordHash, user.IsActive)
	return err
}

func (r *userRepository) getUserByID(userID string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(userSelect+` WHERE id = $1`, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(userSelect+` WHERE login = $1 OR email = $1`, loginOrEmail).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) userExistsByLoginOrEmail(login, email string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(userSelect+` WHERE login = $1 OR email = $2`, login, email).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) updateUserPassword(userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(query, passwordHash, userID)
	return err
}
