package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillegas/cabstock-backend/api/middleware"
	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

type recordingActivityLog struct {
	inputs []activitylog.RecordInput
}

func (r *recordingActivityLog) Record(_ context.Context, input activitylog.RecordInput) error {
	r.inputs = append(r.inputs, input)
	return nil
}

func (r *recordingActivityLog) List(context.Context, pagination.Params) (*activitylog.Page, error) {
	return &activitylog.Page{LastPage: 1}, nil
}

func recordRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/activity-logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithIdentity(req.Context(), 7, "Ana Reyes", "staff", "jti-1")
	return req.WithContext(ctx)
}

func TestActivityLogRecordWritesEntry(t *testing.T) {
	svc := &recordingActivityLog{}
	logg := logger.New(logger.Options{Output: io.Discard})
	handler := ActivityLogRecord(svc, logg)

	rec := httptest.NewRecorder()
	handler(rec, recordRequest(`{"actionType":"Updated","details":"adjusted cab price","status":"failed"}`))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, svc.inputs, 1)
	entry := svc.inputs[0]
	assert.Equal(t, enums.ActivityActionUpdated, entry.ActionType)
	assert.Equal(t, enums.ActivityStatusFailed, entry.Status)
	assert.Equal(t, uint(7), entry.Actor.ID)
	assert.Equal(t, "Ana Reyes", entry.Actor.FullName)
	assert.Equal(t, "staff", entry.Actor.Role)
}

func TestActivityLogRecordDefaultsToSuccessful(t *testing.T) {
	svc := &recordingActivityLog{}
	logg := logger.New(logger.Options{Output: io.Discard})
	handler := ActivityLogRecord(svc, logg)

	rec := httptest.NewRecorder()
	handler(rec, recordRequest(`{"actionType":"Created","details":"added accessory"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.inputs, 1)
	assert.Equal(t, enums.ActivityStatusSuccessful, svc.inputs[0].Status)
}

func TestActivityLogRecordRejectsUnknownAction(t *testing.T) {
	svc := &recordingActivityLog{}
	logg := logger.New(logger.Options{Output: io.Discard})
	handler := ActivityLogRecord(svc, logg)

	rec := httptest.NewRecorder()
	handler(rec, recordRequest(`{"actionType":"Exploded","details":"boom"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.inputs)
}

func TestActivityLogRecordRejectsUnknownStatus(t *testing.T) {
	svc := &recordingActivityLog{}
	logg := logger.New(logger.Options{Output: io.Discard})
	handler := ActivityLogRecord(svc, logg)

	rec := httptest.NewRecorder()
	handler(rec, recordRequest(`{"actionType":"Created","details":"added accessory","status":"partial"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.inputs)
}
