package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/db"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
	"github.com/mvillegas/cabstock-backend/pkg/security"
)

const minPasswordLen = 8

// CreateUserInput holds creation-time data for an operator account.
type CreateUserInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// UpdateUserInput captures the user fields that may be mutated.
type UpdateUserInput struct {
	FullName *string `json:"fullName,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserPage is one page of users plus listing counts.
type UserPage struct {
	Data     []models.User `json:"data"`
	Total    int64         `json:"total"`
	LastPage int           `json:"last_page"`
}

// Service exposes operator account operations.
type Service interface {
	List(ctx context.Context, p pagination.Params) (*UserPage, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the provided repository.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, p pagination.Params) (*UserPage, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return &UserPage{
		Data:     rows,
		Total:    total,
		LastPage: pagination.LastPage(total, p.Limit),
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return row, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if len(input.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	role := enums.UserRoleStaff
	if input.Role != "" {
		parsed, err := enums.ParseUserRole(input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		role = parsed
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	row := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
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
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		row.Role = role
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLen {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
		}
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		row.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapUserErr(err)
	}
	return nil
}

func mapUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
}
