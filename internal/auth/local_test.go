package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/db/dbtest"
	"github.com/pzillo/landing/internal/db/models"
)

func TestAuthenticate(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)

	_, err := p.CreateUser("Admin@Example.com ", "s3cret")
	require.NoError(t, err)

	disabled, err := p.CreateUser("off@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", disabled.ID).Update("active", false).Error)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "admin@example.com", password: "s3cret"},
		{name: "email case and spaces ignored", email: "  ADMIN@example.com", password: "s3cret"},
		{name: "wrong password", email: "admin@example.com", password: "nope", wantErr: ErrInvalidPassword},
		{name: "unknown user", email: "who@example.com", password: "s3cret", wantErr: ErrUserNotFound},
		{name: "disabled", email: "off@example.com", password: "s3cret", wantErr: ErrUserAccountDisabled},
		{name: "empty email", password: "s3cret", wantErr: ErrEmptyCredentials},
		{name: "empty password", email: "admin@example.com", wantErr: ErrEmptyCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := p.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", user.Email)
		})
	}
}

func TestCreateUser(t *testing.T) {
	p := NewLocalProvider(dbtest.New(t))

	user, err := p.CreateUser("a@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "pw", user.Password, "password is stored hashed")
	assert.True(t, user.VerifyPassword("pw"))

	_, err = p.CreateUser("A@example.com", "other")
	require.ErrorIs(t, err, ErrUserExists)

	_, err = p.CreateUser("", "pw")
	require.ErrorIs(t, err, ErrEmptyCredentials)

	got, err := p.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = p.GetUserByID(user.ID + 100)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPassword(t *testing.T) {
	p := NewLocalProvider(dbtest.New(t))

	_, err := p.CreateUser("a@example.com", "old")
	require.NoError(t, err)

	require.NoError(t, p.ResetPassword("a@example.com", "new"))

	_, err = p.Authenticate("a@example.com", "old")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("a@example.com", "new")
	require.NoError(t, err)

	require.ErrorIs(t, p.ResetPassword("missing@example.com", "x"), ErrUserNotFound)
	require.ErrorIs(t, p.ResetPassword("a@example.com", ""), ErrEmptyCredentials)
}

func TestEnsureUser(t *testing.T) {
	p := NewLocalProvider(dbtest.New(t))

	created, err := p.EnsureUser("admin@example.com", "changeme")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = p.EnsureUser("second@example.com", "changeme")
	require.NoError(t, err)
	assert.False(t, created, "only seeds an empty table")

	_, err = p.GetUserByEmail("second@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountManagement(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)

	first, err := p.CreateUser("first@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("the only account is protected", func(t *testing.T) {
		assert.ErrorIs(t, p.SetActive(first.ID, false), ErrLastActiveUser)
		assert.ErrorIs(t, p.DeleteUser(first.ID), ErrLastActiveUser)
	})

	second, err := p.CreateUser("second@example.com", "s3cret")
	require.NoError(t, err)

	users, err := p.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)

	require.NoError(t, p.SetActive(second.ID, false))
	_, err = p.Authenticate("second@example.com", "s3cret")
	require.ErrorIs(t, err, ErrUserAccountDisabled)

	assert.ErrorIs(t, p.SetActive(first.ID, false), ErrLastActiveUser, "second is disabled")
	require.NoError(t, p.DeleteUser(second.ID))
	assert.ErrorIs(t, p.SetActive(999, true), ErrUserNotFound)

	_, err = p.CreateUser("third@example.com", "s3cret")
	require.NoError(t, err)
	assert.ErrorIs(t, p.DeleteUser(999), ErrUserNotFound)
}

func TestSessionVersion(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)

	_, err := p.CreateUser("first@example.com", "s3cret")
	require.NoError(t, err)

	u, err := p.CreateUser("second@example.com", "s3cret")
	require.NoError(t, err)
	require.Zero(t, u.SessionVersion)

	version := func() uint64 {
		got, err := p.GetUserByID(u.ID)
		require.NoError(t, err)

		return got.SessionVersion
	}

	require.NoError(t, p.ResetPassword(u.Email, "new-s3cret"))
	assert.Equal(t, uint64(1), version(), "password reset revokes sessions")

	require.NoError(t, p.SetActive(u.ID, false))
	assert.Equal(t, uint64(2), version(), "disabling revokes sessions")

	require.NoError(t, p.SetActive(u.ID, true))
	assert.Equal(t, uint64(2), version(), "enabling keeps the version")
}

func TestLastActiveGuard_LocksRows(t *testing.T) {
	// sqlite drops locking clauses, so build the postgres statement without a server
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=localhost user=landing dbname=landing sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	require.NoError(t, err)

	var statement string

	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		statement = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	require.ErrorIs(t, lastActiveGuard(db, 1), ErrLastActiveUser, "a dry run finds no rows")
	assert.Contains(t, statement, "FOR UPDATE")
	assert.Contains(t, statement, "active = $1")
}
