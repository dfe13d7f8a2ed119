package activitylog

import (
	"context"
	"fmt"
	"time"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// Actor is the user snapshot stamped onto each entry. A zero Actor marks a
// system-originated entry.
type Actor struct {
	ID       uint
	FullName string
	Role     string
}

// System is the actor used for entries not tied to a signed-in user.
var System = Actor{FullName: "system"}

// RecordInput describes one activity log entry.
type RecordInput struct {
	Actor      Actor
	ActionType enums.ActivityAction
	Details    string
	Status     enums.ActivityStatus
}

// Page is one page of log entries plus listing counts.
type Page struct {
	Data     []models.ActivityLogEntry `json:"data"`
	Total    int64                     `json:"total"`
	LastPage int                       `json:"last_page"`
}

// Service exposes activity log operations.
type Service interface {
	Record(ctx context.Context, input RecordInput) error
	List(ctx context.Context, p pagination.Params) (*Page, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds an activity log service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity log repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Record appends an entry. Failures are logged but reported to the caller;
// most call sites treat audit failures as non-fatal.
func (s *service) Record(ctx context.Context, input RecordInput) error {
	if !input.ActionType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown action type")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown activity status")
	}

	entry := &models.ActivityLogEntry{
		Timestamp:      time.Now().UTC(),
		UserID:         input.Actor.ID,
		UserFullName:   input.Actor.FullName,
		UserRole:       input.Actor.Role,
		ActionType:     input.ActionType,
		Details:        input.Details,
		Status:         input.Status,
		IsSystemAction: input.Actor.ID == 0,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logg.Error(ctx, "appending activity log entry", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append activity log")
	}
	return nil
}

func (s *service) List(ctx context.Context, p pagination.Params) (*Page, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity log")
	}
	return &Page{
		Data:     rows,
		Total:    total,
		LastPage: pagination.LastPage(total, p.Limit),
	}, nil
}
