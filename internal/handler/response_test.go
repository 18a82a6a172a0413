package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hail/internal/repository"
	"hail/internal/service"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantKind string
	}{
		{err: repository.ErrNotFound, wantCode: http.StatusNotFound, wantKind: "not_found"},
		{err: service.ErrEmptyPickupAddress, wantCode: http.StatusBadRequest, wantKind: "validation"},
		{err: service.ErrNegativeDistance, wantCode: http.StatusBadRequest, wantKind: "validation"},
		{err: service.ErrTrafficOutOfRange, wantCode: http.StatusBadRequest, wantKind: "validation"},
		{err: service.ErrUnknownStatus, wantCode: http.StatusBadRequest, wantKind: "validation"},
		{err: service.ErrScheduledInPast, wantCode: http.StatusBadRequest, wantKind: "validation"},
		{err: service.ErrNotRideOwner, wantCode: http.StatusForbidden, wantKind: "permission"},
		{err: service.ErrNotAssignedDriver, wantCode: http.StatusForbidden, wantKind: "permission"},
		{err: service.ErrRideNotPending, wantCode: http.StatusConflict, wantKind: "conflict"},
		{err: service.ErrRideTerminal, wantCode: http.StatusConflict, wantKind: "conflict"},
		{err: service.ErrInvalidTransition, wantCode: http.StatusConflict, wantKind: "conflict"},
		{err: errors.New("database exploded"), wantCode: http.StatusInternalServerError, wantKind: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind+"/"+tt.err.Error(), func(t *testing.T) {
			code, kind := classifyError(tt.err)
			if code != tt.wantCode || kind != tt.wantKind {
				t.Errorf("classifyError(%v) = (%d, %q), want (%d, %q)", tt.err, code, kind, tt.wantCode, tt.wantKind)
			}
		})
	}
}

func TestClassifyWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("accept ride: %w", service.ErrRideNotPending)
	code, kind := classifyError(wrapped)
	if code != http.StatusConflict || kind != "conflict" {
		t.Errorf("wrapped error mapped to (%d, %q), want (409, conflict)", code, kind)
	}
}
