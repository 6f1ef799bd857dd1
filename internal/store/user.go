package store

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/model"
)

const minPasswordLength = 8

// UserStore persists user records and wraps password hashing. Only the
// bcrypt hash is ever stored; plaintext passwords never leave this
// package's function arguments.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var avatar sql.NullString
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &avatar, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	return &u, nil
}

const userCols = `id, email, password_hash, full_name, avatar, created_at`

// Register creates a user with a bcrypt hash of password. Email matching
// is exact and case-sensitive; an existing row with the same email fails
// with ErrDuplicateEmail.
func (s *UserStore) Register(email, password, fullName string) (*model.User, error) {
	existing, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, full_name) VALUES (?, ?, ?)`,
		email, string(hash), fullName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// Verify checks an email/password pair. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *UserStore) Verify(email, password string) (*model.User, error) {
	u, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword replaces the stored hash after verifying the old
// password. New passwords shorter than eight characters fail with
// ErrWeakPassword.
func (s *UserStore) ChangePassword(userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, string(hash), userID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateProfile changes full name and email. The uniqueness check
// excludes the user's own row so saving an unchanged email succeeds.
func (s *UserStore) UpdateProfile(id int64, fullName, email string) (*model.User, error) {
	var existingID int64
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = ? AND id != ?`, email, id).Scan(&existingID)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.db.Exec(`UPDATE users SET full_name = ?, email = ? WHERE id = ?`, fullName, email, id); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetByID(id)
}

// UpdateAvatar stores the opaque avatar payload verbatim and returns the
// row read back.
func (s *UserStore) UpdateAvatar(id int64, avatar string) (*model.User, error) {
	if _, err := s.db.Exec(`UPDATE users SET avatar = ? WHERE id = ?`, avatar, id); err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return s.GetByID(id)
}
