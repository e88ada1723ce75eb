package order

import "fmt"

const (
	LabelCreated             = "Created"
	LabelCreatedClone        = "Created (clone)"
	LabelFinalizedNoSteps    = "Finalized (no steps defined)"
	LabelProcessingStarted   = "Processing started"
	LabelCompletion          = "Completion"
	LabelCompletionNoProduct = "Completion (product not specified)"
)

// LabelContext is the state a history label is computed from: either an item
// with its product, or the legacy single-product view of an order.
type LabelContext struct {
	From Status
	To   Status

	// HasProduct is false only for a legacy view without any item.
	HasProduct bool
	Steps      []string
	StepIndex  *int
}

// Label names the history entry produced by a status change. Rules are
// evaluated in order and the first match wins.
func Label(c LabelContext) string {
	if !c.HasProduct {
		if c.To == Done {
			return LabelCompletionNoProduct
		}
		return changedTo(c.To)
	}

	if len(c.Steps) == 0 {
		switch {
		case c.To == Done:
			return LabelFinalizedNoSteps
		case c.From == Waiting && c.To == InProgress:
			return LabelProcessingStarted
		}
	}

	if c.StepIndex != nil && *c.StepIndex >= 0 && *c.StepIndex < len(c.Steps) {
		return c.Steps[*c.StepIndex]
	}

	if c.To == Done {
		return LabelCompletion
	}
	return changedTo(c.To)
}

// RollbackLabel names the entry written when an item is moved back to step.
func RollbackLabel(step string) string {
	return "Back to step " + step
}

func changedTo(s Status) string {
	return fmt.Sprintf("Changed to %s", s.Text())
}
