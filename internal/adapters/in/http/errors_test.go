package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	orderID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("order", orderID)

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantPartial bool
	}{
		{"not found", notFound, http.StatusNotFound, false},
		{"wrapped not found", fmt.Errorf("get order: %w", notFound), http.StatusNotFound, false},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest, false},
		{"required value", errs.NewValueIsRequiredError("client id"), http.StatusBadRequest, false},
		{"out of range", errs.NewValueIsOutOfRangeError("step", 4, 0, 2), http.StatusBadRequest, false},
		{"joined validation", errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), http.StatusBadRequest, false},
		{"nil uuid", kernel.ErrUUIDIsNotConstructed, http.StatusBadRequest, false},
		{"invalid state", errs.NewInvalidStateError("advance", orderID, "no steps"), http.StatusConflict, false},
		{"referential conflict", errs.NewReferentialConflictError("product", orderID), http.StatusConflict, false},
		{"store unavailable", errs.NewStoreUnavailableError("update order", errors.New("conn reset")), http.StatusServiceUnavailable, false},
		{"echo error", echo.NewHTTPError(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType, false},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, false},
		{
			"cascade wins over its cause",
			errs.NewCascadeError("advance item", orderID, "item set to done", notFound),
			http.StatusInternalServerError,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, partial := statusOf(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantPartial, partial)
		})
	}
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()
	zero := 0

	t.Run("valid product", func(t *testing.T) {
		require.NoError(t, v.Validate(&SaveProductRequest{Name: "Cards", ProcessSteps: []string{"Print", "Cut"}}))
	})
	t.Run("steps differing by spaces", func(t *testing.T) {
		err := v.Validate(&SaveProductRequest{Name: "Cards", ProcessSteps: []string{"Print", "Print "}})
		require.Error(t, err)
		assert.Contains(t, validationMessage(err), "unique_steps")
	})
	t.Run("blank step", func(t *testing.T) {
		err := v.Validate(&SaveProductRequest{Name: "Cards", ProcessSteps: []string{"Print", "  "}})
		require.Error(t, err)
		assert.Contains(t, validationMessage(err), "step_name")
	})
	t.Run("no steps", func(t *testing.T) {
		require.Error(t, v.Validate(&SaveProductRequest{Name: "Cards"}))
	})
	t.Run("order without lines", func(t *testing.T) {
		err := v.Validate(&NewOrderRequest{ClientID: kernel.NewUUID().String()})
		require.Error(t, err)
		msg := validationMessage(err)
		assert.Contains(t, msg, "OrderDate")
		assert.Contains(t, msg, "Items")
	})
	t.Run("line with zero quantity", func(t *testing.T) {
		err := v.Validate(&OrderLineRequest{ProductID: kernel.NewUUID().String()})
		require.Error(t, err)
		assert.Contains(t, validationMessage(err), "Quantity")
	})
	t.Run("unknown status", func(t *testing.T) {
		require.Error(t, v.Validate(&StatusChangeRequest{Status: "paused"}))
		require.NoError(t, v.Validate(&StatusChangeRequest{Status: "in_progress"}))
	})
	t.Run("step zero is a valid target", func(t *testing.T) {
		require.NoError(t, v.Validate(&StepChangeRequest{Step: &zero}))
		require.Error(t, v.Validate(&StepChangeRequest{}))
	})
	t.Run("client email", func(t *testing.T) {
		require.NoError(t, v.Validate(&NewClientRequest{FullName: "Ada", Phone: "06"}))
		require.Error(t, v.Validate(&NewClientRequest{FullName: "Ada", Phone: "06", Email: "nope"}))
	})
}
