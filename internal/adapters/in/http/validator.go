package http

import (
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 into echo's Context.Validate.
type RequestValidator struct {
	v *validatorv10.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validatorv10.New()
	v.RegisterStructValidation(processStepsStructValidation, SaveProductRequest{})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// processStepsStructValidation refuses blank step names and names that only
// differ by surrounding spaces.
func processStepsStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(SaveProductRequest)

	seen := make(map[string]struct{}, len(req.ProcessSteps))
	for _, step := range req.ProcessSteps {
		name := strings.TrimSpace(step)
		if name == "" {
			sl.ReportError(req.ProcessSteps, "process_steps", "ProcessSteps", "step_name", step)
			return
		}
		if _, ok := seen[name]; ok {
			sl.ReportError(req.ProcessSteps, "process_steps", "ProcessSteps", "unique_steps", name)
			return
		}
		seen[name] = struct{}{}
	}
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
