package queries

import (
	"hash/fnv"

	"printshop/internal/core/domain/model/order"
)

const (
	StepReadyToStart   = "Ready to start"
	StepNotDefined     = "Steps not defined"
	StepDone           = "Done"
	StepUndefined      = "Undefined"
	StepProductMissing = "Product details missing"
)

var stepPalette = []string{
	"blue", "purple", "pink", "orange", "teal", "indigo", "cyan", "lime",
}

var statusColors = map[order.Status]string{
	order.Waiting:    "yellow",
	order.InProgress: "blue",
	order.Postponed:  "orange",
	order.Cancelled:  "red",
	order.Done:       "green",
}

// StepColor maps a step name onto the badge palette. The same name always
// gets the same colour.
func StepColor(step string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(step))
	return stepPalette[h.Sum32()%uint32(len(stepPalette))]
}

// StatusColor is the badge colour of a status.
func StatusColor(s order.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "gray"
}

// CurrentStepLabel describes where an item stands in its product's process.
func CurrentStepLabel(status order.Status, steps []string, stepIndex *int) string {
	if len(steps) == 0 {
		if status == order.Done {
			return StepDone
		}
		return StepNotDefined
	}

	idx := -1
	if stepIndex != nil {
		idx = *stepIndex
	}
	switch {
	case idx >= len(steps):
		return StepDone
	case idx < 0 && status == order.Waiting:
		return StepReadyToStart
	case idx < 0:
		return StepUndefined
	}
	return steps[idx]
}

// LegacyStepLabel is CurrentStepLabel evaluated on the single-product view
// of an order.
func LegacyStepLabel(status order.Status, view order.LegacyView) string {
	if !view.HasProduct {
		if status == order.Done {
			return StepDone
		}
		return StepProductMissing
	}
	return CurrentStepLabel(status, view.Steps, view.StepIndex)
}
