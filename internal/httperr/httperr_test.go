package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBusinessError_Message(t *testing.T) {
	err := Reject(CodeInvalidState, "Current status: %s", "cancelled")

	assert.Equal(t, "Current status: cancelled", err.Error())
	assert.True(t, IsBusiness(err, CodeInvalidState))
	assert.False(t, IsBusiness(err, CodeSlotFull))
	assert.Equal(t, "slot_full", ErrBusiness(CodeSlotFull).Error())

	wrapped := fmt.Errorf("confirm: %w", err)
	be, ok := AsBusiness(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeInvalidState, be.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_active"}

	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr), "idx_active"))
	assert.False(t, IsUniqueViolation(pgErr, "other"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestFromError_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"rejection", Reject(CodeSlotFull, "Slot is already fully booked"), http.StatusBadRequest},
		{"not found", ErrBusiness(CodeBookingNotFound), http.StatusNotFound},
		{"forbidden", ErrBusiness(CodeForbidden), http.StatusForbidden},
		{"infra", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tc.err, "failed")

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
