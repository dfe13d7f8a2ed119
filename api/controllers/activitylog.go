package controllers

import (
	"net/http"

	"github.com/mvillegas/cabstock-backend/api/responses"
	"github.com/mvillegas/cabstock-backend/api/validators"
	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
)

func ActivityLogList(svc activitylog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity log service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, page.Data, page.Total, page.LastPage)
	}
}

type activityRecordRequest struct {
	ActionType string `json:"actionType" validate:"required"`
	Details    string `json:"details" validate:"required"`
	Status     string `json:"status"`
}

// ActivityLogRecord writes a manual audit entry attributed to the signed-in
// actor. Most entries are written by the services themselves; this endpoint
// exists for frontend-originated events.
func ActivityLogRecord(svc activitylog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload activityRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseActivityAction(payload.ActionType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown action type"))
			return
		}

		status := enums.ActivityStatusSuccessful
		if payload.Status != "" {
			status, err = enums.ParseActivityStatus(payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown status"))
				return
			}
		}

		input := activitylog.RecordInput{
			Actor:      actorFromContext(r),
			ActionType: action,
			Details:    payload.Details,
			Status:     status,
		}
		if err := svc.Record(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "recorded"})
	}
}
