package order_test

import (
	"testing"

	"printshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestLabel(t *testing.T) {
	steps := []string{"Design", "Print", "Cut"}

	tests := []struct {
		name string
		ctx  order.LabelContext
		want string
	}{
		{
			name: "done without steps",
			ctx:  order.LabelContext{From: order.InProgress, To: order.Done, HasProduct: true},
			want: "Finalized (no steps defined)",
		},
		{
			name: "start without steps",
			ctx:  order.LabelContext{From: order.Waiting, To: order.InProgress, HasProduct: true},
			want: "Processing started",
		},
		{
			name: "forced in progress without steps",
			ctx:  order.LabelContext{From: order.Postponed, To: order.InProgress, HasProduct: true},
			want: "Changed to In progress",
		},
		{
			name: "item on a step",
			ctx:  order.LabelContext{From: order.Waiting, To: order.InProgress, HasProduct: true, Steps: steps, StepIndex: intPtr(1)},
			want: "Print",
		},
		{
			name: "done on last step keeps step name",
			ctx:  order.LabelContext{From: order.InProgress, To: order.Done, HasProduct: true, Steps: steps, StepIndex: intPtr(2)},
			want: "Cut",
		},
		{
			name: "done before starting",
			ctx:  order.LabelContext{From: order.Waiting, To: order.Done, HasProduct: true, Steps: steps},
			want: "Completion",
		},
		{
			name: "postponed before starting",
			ctx:  order.LabelContext{From: order.Waiting, To: order.Postponed, HasProduct: true, Steps: steps},
			want: "Changed to Postponed",
		},
		{
			name: "index out of range falls through",
			ctx:  order.LabelContext{From: order.Waiting, To: order.Cancelled, HasProduct: true, Steps: steps, StepIndex: intPtr(7)},
			want: "Changed to Cancelled",
		},
		{
			name: "legacy view without product done",
			ctx:  order.LabelContext{From: order.InProgress, To: order.Done},
			want: "Completion (product not specified)",
		},
		{
			name: "legacy view without product other",
			ctx:  order.LabelContext{From: order.Waiting, To: order.InProgress},
			want: "Changed to In progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Label(tt.ctx))
		})
	}
}

func TestRollbackLabel(t *testing.T) {
	assert.Equal(t, "Back to step Print", order.RollbackLabel("Print"))
}
