package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"widviz/config"
	"widviz/types"
)

// CreateUser registers a new account. Emails are unique.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) error {
	email = normalizeEmail(email)
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, email).Scan(&exists)
	switch {
	case err == nil:
		return ErrAccountExists
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(username), email, string(hash), s.now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Authenticate checks email and password and returns the account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return types.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return types.User{}, ErrIncorrectPassword
	}
	return user, nil
}

func (s *Store) userByEmail(ctx context.Context, email string) (types.User, error) {
	var u types.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password FROM users WHERE email = ?`, normalizeEmail(email)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return types.User{}, ErrAccountNotFound
	}
	if err != nil {
		return types.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// IssueOTP creates a fresh six-digit reset code for email, replacing any
// previous one. Only its hash is stored; the plain code is returned so it
// can be delivered out of band.
func (s *Store) IssueOTP(ctx context.Context, email string) (string, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	otp := fmt.Sprintf("%06d", n.Int64()+100000)

	hash, err := bcrypt.GenerateFromPassword([]byte(otp), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	expires := s.now().Add(config.OTPLifetime).Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO password_resets (email, otp_hash, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET otp_hash = excluded.otp_hash, expires_at = excluded.expires_at`,
		user.Email, string(hash), expires)
	if err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return otp, nil
}

// VerifyOTP reports ErrInvalidOTP unless otp matches the unexpired code
// issued for email.
func (s *Store) VerifyOTP(ctx context.Context, email, otp string) error {
	return s.verifyOTP(ctx, s.db, email, otp)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) verifyOTP(ctx context.Context, q queryer, email, otp string) error {
	var (
		hash    string
		expires int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT otp_hash, expires_at FROM password_resets WHERE email = ?`, normalizeEmail(email)).
		Scan(&hash, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("lookup otp: %w", err)
	}
	if s.now().Unix() > expires {
		return ErrInvalidOTP
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(otp))) != nil {
		return ErrInvalidOTP
	}
	return nil
}

// ResetPassword replaces the password for email after checking otp. The code
// is consumed on success.
func (s *Store) ResetPassword(ctx context.Context, email, otp, password string) error {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.verifyOTP(ctx, tx, email, otp); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE users SET password = ? WHERE email = ?`, string(hash), email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := affectedOne(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM password_resets WHERE email = ?`, email); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return tx.Commit()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
