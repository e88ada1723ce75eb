package order_test

import (
	"testing"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Codes(t *testing.T) {
	tests := []struct {
		status order.Status
		code   string
		text   string
	}{
		{order.Waiting, "waiting", "Waiting"},
		{order.InProgress, "in_progress", "In progress"},
		{order.Postponed, "postponed", "Postponed"},
		{order.Cancelled, "cancelled", "Cancelled"},
		{order.Done, "done", "Done"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.status.String())
			assert.Equal(t, tt.text, tt.status.Text())
			require.NoError(t, tt.status.Validate())

			parsed, err := order.ParseStatus(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.status, parsed)
		})
	}
}

func TestStatus_Unknown(t *testing.T) {
	t.Run("should reject zero value", func(t *testing.T) {
		err := order.Unknown.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "unknown", order.Unknown.String())
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		_, err := order.ParseStatus("termine")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"termine" is not a valid status`)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_Rank(t *testing.T) {
	ranked := []order.Status{order.InProgress, order.Waiting, order.Postponed, order.Done, order.Cancelled}

	for i := 1; i < len(ranked); i++ {
		assert.Less(t, ranked[i-1].Rank(), ranked[i].Rank(), "%s should rank before %s", ranked[i-1], ranked[i])
	}
	assert.Len(t, order.AllStatuses(), 5)
}
