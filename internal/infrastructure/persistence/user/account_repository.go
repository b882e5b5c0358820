// Package user provides the account repository
package user

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shinescript/shinescript-go/internal/domain/user"
	"github.com/shinescript/shinescript-go/internal/infrastructure/observability/logging"
	"github.com/shinescript/shinescript-go/pkg/config"
)

type AccountRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewAccountRepository(db *sql.DB, logger *logging.ChanneledLogger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

var _ user.Repository = (*AccountRepository)(nil)

// FindByEmail retrieves an account by email. Returns (nil, nil) when no row exists.
func (r *AccountRepository) FindByEmail(email string) (*user.Account, error) {
	query := `SELECT id, email, display_name, password_hash, created, changed FROM accounts WHERE email = ?`
	return r.findOne(query, strings.ToLower(strings.TrimSpace(email)))
}

// FindByID retrieves an account by ID. Returns (nil, nil) when no row exists.
func (r *AccountRepository) FindByID(id string) (*user.Account, error) {
	query := `SELECT id, email, display_name, password_hash, created, changed FROM accounts WHERE id = ?`
	return r.findOne(query, id)
}

func (r *AccountRepository) findOne(query string, arg string) (*user.Account, error) {
	start := time.Now()

	var (
		account user.Account
		changed sql.NullTime
	)
	err := r.db.QueryRow(query, arg).Scan(
		&account.ID, &account.Email, &account.DisplayName,
		&account.PasswordHash, &account.Created, &changed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}
	if changed.Valid {
		account.Changed = changed.Time
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	return &account, nil
}

// Store inserts a new account.
func (r *AccountRepository) Store(account *user.Account) error {
	query := `INSERT INTO accounts (id, email, display_name, password_hash, created, changed) VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	if r.logger != nil {
		r.logger.Database().Debug("Executing account insert", "id", account.ID)
	}

	_, err := r.db.Exec(query, account.ID, strings.ToLower(account.Email),
		account.DisplayName, account.PasswordHash, account.Created, account.Changed)
	if err != nil {
		if r.logger != nil {
			r.logger.Database().Error("Account insert failed", "error", err.Error(), "id", account.ID)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	duration := time.Since(start)
	if r.logger != nil {
		r.logger.Database().Info("Account insert completed", "id", account.ID, "duration", duration)
		if duration > config.SlowQueryThreshold {
			r.logger.LogSlowQuery(query, duration)
		}
	}
	return nil
}

// Update rewrites the mutable columns of an existing account.
func (r *AccountRepository) Update(account *user.Account) error {
	query := `UPDATE accounts SET email = ?, display_name = ?, password_hash = ?, changed = ? WHERE id = ?`

	start := time.Now()
	result, err := r.db.Exec(query, strings.ToLower(account.Email), account.DisplayName,
		account.PasswordHash, time.Now().UTC(), account.ID)
	if err != nil {
		if r.logger != nil {
			r.logger.Database().Error("Account update failed", "error", err.Error(), "id", account.ID)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("no account found with id %s", account.ID)
	}

	duration := time.Since(start)
	if r.logger != nil && duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}
