package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
	"github.com/mvillegas/cabstock-backend/pkg/security"
)

func testPasswordCfg() config.PasswordConfig {
	// minimal argon cost so the suite stays fast
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}))

	svc, err := NewService(NewRepository(gdb), testPasswordCfg())
	require.NoError(t, err)
	return svc
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{
		FullName: "Admin One",
		Email:    "ADMIN@Example.com",
		Password: "super-secret",
		Role:     "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, enums.UserRoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "super-secret", user.PasswordHash)

	ok, err := security.VerifyPassword("super-secret", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserDefaultsToStaff(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{
		FullName: "Staff One",
		Email:    "staff@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleStaff, user.Role)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := map[string]CreateUserInput{
		"short password": {FullName: "A", Email: "a@example.com", Password: "short"},
		"bad email":      {FullName: "A", Email: "not-an-email", Password: "super-secret"},
		"bad role":       {FullName: "A", Email: "a@example.com", Password: "super-secret", Role: "owner"},
		"blank name":     {FullName: "  ", Email: "a@example.com", Password: "super-secret"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, input)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	input := CreateUserInput{FullName: "A", Email: "dup@example.com", Password: "super-secret"}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestUpdateUserRoleAndDeactivate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{FullName: "A", Email: "a@example.com", Password: "super-secret"})
	require.NoError(t, err)

	role := "admin"
	inactive := false
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{Role: &role, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestListUsersPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Create(ctx, CreateUserInput{FullName: "U", Email: email, Password: "super-secret"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Len(t, page.Data, 1)
}

func TestGetByEmailNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
