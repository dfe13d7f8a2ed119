package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Customer{}))

	svc, err := NewService(NewRepository(gdb))
	require.NoError(t, err)
	return svc
}

func validInput() CreateCustomerInput {
	return CreateCustomerInput{
		FullName: "Maria Santos",
		Email:    "maria@example.com",
		Phone:    "+639171234567",
		Address:  "Quezon City",
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := newTestService(t)

	customer, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, "maria@example.com", customer.Email)
	assert.False(t, customer.DateRegistered.IsZero())
}

func TestCreateCustomerRejectsBadPhone(t *testing.T) {
	svc := newTestService(t)

	for _, phone := range []string{"", "09171234567", "+6391712345", "+639171234567x"} {
		input := validInput()
		input.Phone = phone
		_, err := svc.Create(context.Background(), input)
		require.Error(t, err, "phone %q", phone)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestCreateCustomerDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.FullName = "Another Person"
	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestUpdateCustomerPartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	addr := "Makati"
	updated, err := svc.Update(ctx, customer.ID, UpdateCustomerInput{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Makati", updated.Address)
	assert.Equal(t, customer.FullName, updated.FullName)

	badPhone := "0917"
	_, err = svc.Update(ctx, customer.ID, UpdateCustomerInput{Phone: &badPhone})
	require.Error(t, err)
}

func TestListCustomersPaginatedAndSearched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	names := []string{"Maria Santos", "Jose Cruz", "Maria Clara"}
	for i, name := range names {
		input := validInput()
		input.FullName = name
		input.Email = name + string(rune('a'+i)) + "@example.com"
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, "maria", pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Len(t, page.Data, 1)
}

func TestDeleteCustomer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))

	_, err = svc.Get(ctx, customer.ID)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
