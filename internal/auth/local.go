package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pzillo/landing/internal/db/models"
)

const (
	whereEmail = "email = ?"
	whereID    = "id = ?"
)

// revokeSessions bumps the session version, signing the account out everywhere.
var revokeSessions = gorm.Expr("session_version + 1") //nolint:gochecknoglobals

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	user, err := p.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	// Check if user is active
	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	// Verify password
	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// CreateUser creates a new active user.
func (p *LocalProvider) CreateUser(email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	// Check if user already exists
	_, err := p.GetUserByEmail(email)
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:   true,
		Email:    email,
		Password: hashedPassword,
	}

	if err = p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ResetPassword sets a new password for the account with the given email.
// Existing sessions of the account stop being valid.
func (p *LocalProvider) ResetPassword(email, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyCredentials
	}

	hashedPassword, err := models.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := p.db.Model(&models.User{}).
		Where(whereEmail, NormalizeEmail(email)).
		Updates(map[string]any{"password": hashedPassword, "session_version": revokeSessions})
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (p *LocalProvider) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	err := p.db.Where(whereEmail, NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// EnsureUser creates the account when the users table is empty.
// It reports whether an account was created.
func (p *LocalProvider) EnsureUser(email, password string) (bool, error) {
	var count int64
	if err := p.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return false, nil
	}

	user, err := p.CreateUser(email, password)
	if err != nil {
		return false, err
	}

	log.Warn().Str("email", user.Email).Msg("created initial admin account, change its password")

	return true, nil
}

// ListUsers returns all accounts, oldest first.
func (p *LocalProvider) ListUsers() ([]models.User, error) {
	var users []models.User

	if err := p.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// SetActive enables or disables an account. The last active account cannot
// be disabled. Disabling signs the account out.
func (p *LocalProvider) SetActive(userID uint64, active bool) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		changes := map[string]any{"active": active}

		if !active {
			if err := lastActiveGuard(tx, userID); err != nil {
				return err
			}

			changes["session_version"] = revokeSessions
		}

		result := tx.Model(&models.User{}).Where(whereID, userID).Updates(changes)
		if result.Error != nil {
			return fmt.Errorf("failed to update user: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// DeleteUser removes an account. The last active account cannot be deleted.
func (p *LocalProvider) DeleteUser(userID uint64) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := lastActiveGuard(tx, userID); err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// lastActiveGuard fails when userID is the only active account.
// The active rows stay locked until the transaction ends, so two concurrent
// changes can not both pass the check.
func lastActiveGuard(tx *gorm.DB, userID uint64) error {
	var ids []uint64

	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Model(&models.User{}).
		Where("active = ?", true).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("failed to lock active users: %w", err)
	}

	for _, id := range ids {
		if id != userID {
			return nil
		}
	}

	return ErrLastActiveUser
}
