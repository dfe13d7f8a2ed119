package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mvillegas/cabstock-backend/api/middleware"
	"github.com/mvillegas/cabstock-backend/api/validators"
	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/inventory"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
)

func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").
			WithDetails(map[string]any{"field": name})
	}
	return uint(id), nil
}

// actorFromContext reconstructs the audit actor from the auth middleware's
// context values.
func actorFromContext(r *http.Request) activitylog.Actor {
	ctx := r.Context()
	return activitylog.Actor{
		ID:       middleware.UserIDFromContext(ctx),
		FullName: middleware.FullNameFromContext(ctx),
		Role:     middleware.RoleFromContext(ctx),
	}
}

func inventoryFilterFromQuery(r *http.Request) inventory.Filter {
	return inventory.Filter{
		Search:   validators.QueryString(r, "search"),
		Make:     validators.QueryString(r, "make"),
		Color:    validators.QueryString(r, "color"),
		Category: validators.QueryString(r, "category"),
		Supplier: validators.QueryString(r, "supplier"),
		Status:   validators.QueryString(r, "status"),
	}
}
