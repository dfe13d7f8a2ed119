package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// phoneRe matches Philippine mobile numbers in +639XXXXXXXXX form.
var phoneRe = regexp.MustCompile(`^\+639\d{9}$`)

// CreateCustomerInput holds creation-time customer data.
type CreateCustomerInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,ph_mobile"`
	Address  string `json:"address"`
}

// UpdateCustomerInput captures the customer fields that may be mutated.
type UpdateCustomerInput struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,ph_mobile"`
	Address  *string `json:"address,omitempty"`
}

// CustomerPage is one page of customers plus listing counts.
type CustomerPage struct {
	Data     []models.Customer `json:"data"`
	Total    int64             `json:"total"`
	LastPage int               `json:"last_page"`
}

// Service exposes customer operations.
type Service interface {
	List(ctx context.Context, search string, p pagination.Params) (*CustomerPage, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id uint, input UpdateCustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

// NewService builds a customer service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string, p pagination.Params) (*CustomerPage, error) {
	rows, total, err := s.repo.List(ctx, search, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return &CustomerPage{
		Data:     rows,
		Total:    total,
		LastPage: pagination.LastPage(total, p.Limit),
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Customer, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if err := validateContact(input.FullName, input.Email, input.Phone); err != nil {
		return nil, err
	}

	row := &models.Customer{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    input.Phone,
		Address:  strings.TrimSpace(input.Address),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateCustomerInput) (*models.Customer, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if strings.TrimSpace(*input.FullName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
		}
		row.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !strings.Contains(email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
		row.Email = email
	}
	if input.Phone != nil {
		if !phoneRe.MatchString(*input.Phone) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone must match +639XXXXXXXXX")
		}
		row.Phone = *input.Phone
	}
	if input.Address != nil {
		row.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func validateContact(fullName, email, phone string) error {
	if strings.TrimSpace(fullName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !strings.Contains(email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if !phoneRe.MatchString(phone) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone must match +639XXXXXXXXX")
	}
	return nil
}
