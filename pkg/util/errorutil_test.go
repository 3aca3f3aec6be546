package util_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/pkg/util"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		in         error
		wantCode   string
		wantStatus int
	}{
		{"passthrough", util.NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"no_rows_is_not_found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"wrapped_no_rows", errors.Join(errors.New("query"), pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"unknown_is_internal", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := util.ToDomainError(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, util.ToDomainError(nil))
}

func TestMapError_NilStaysNil(t *testing.T) {
	assert.NoError(t, util.MapError(nil))
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := util.NewInternalError(errors.New("pq: password authentication failed"))
	domainErr := util.ToDomainError(err)
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.NotContains(t, domainErr.Message, "password")
}

func TestEnvelopeShape(t *testing.T) {
	ok, err := json.Marshal(util.OK(map[string]string{"id": "1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"}}`, string(ok))

	fail, err := json.Marshal(util.Fail("invalid token"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"invalid token"}`, string(fail))
}
