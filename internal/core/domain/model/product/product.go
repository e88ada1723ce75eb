// Package product models the print shop catalogue. A product owns an ordered
// list of process steps; order items reference products and progress through
// those steps.
package product

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// PackagingStep is the terminal step that the authoring workflow appends to
// every product with at least one process step.
const PackagingStep = "Packaging"

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a catalogue entry with its manufacturing process.
//
// Invariants:
//   - name is not blank
//   - step names are not blank and unique within the product
//   - insertion order of steps is their execution order
//
// A product may have zero steps; items of such a product are completed by a
// direct status change.
type Product struct {
	id          kernel.UUID
	name        string
	description *string
	steps       []string

	isConstructed bool
}

// NewProduct validates and creates a product. description may be empty.
func NewProduct(id kernel.UUID, name, description string, steps []string) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setSteps(steps),
	); err != nil {
		return nil, err
	}
	p.setDescription(description)

	return p, nil
}

// RestoreProduct rebuilds a product from persistence.
func RestoreProduct(id kernel.UUID, name string, description *string, steps []string) (*Product, error) {
	var d string
	if description != nil {
		d = *description
	}
	return NewProduct(id, name, d, steps)
}

// WithPackagingStep returns steps with PackagingStep moved to, or appended
// at, the end. The authoring workflow calls it; the progress engine never does.
func WithPackagingStep(steps []string) []string {
	out := make([]string, 0, len(steps)+1)
	for _, s := range steps {
		if strings.TrimSpace(s) != PackagingStep {
			out = append(out, s)
		}
	}
	return append(out, PackagingStep)
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() *string {
	if p.description == nil {
		return nil
	}
	d := *p.description
	return &d
}

// Steps returns a copy of the ordered process steps.
func (p *Product) Steps() []string {
	return slices.Clone(p.steps)
}

func (p *Product) HasSteps() bool {
	return len(p.steps) > 0
}

func (p *Product) StepCount() int {
	return len(p.steps)
}

// StepName returns the name at index and whether index addresses a step.
func (p *Product) StepName(index int) (string, bool) {
	if index < 0 || index >= len(p.steps) {
		return "", false
	}
	return p.steps[index], true
}

// Update replaces the editable fields. It is all-or-nothing: on error the
// product is unchanged.
func (p *Product) Update(name, description string, steps []string) error {
	updated, err := NewProduct(p.id, name, description, steps)
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setDescription(description string) {
	description = strings.TrimSpace(description)
	if description == "" {
		p.description = nil
		return
	}
	p.description = &description
}

func (p *Product) setSteps(steps []string) error {
	seen := make(map[string]struct{}, len(steps))
	cleaned := make([]string, 0, len(steps))
	for i, s := range steps {
		s = strings.TrimSpace(s)
		if s == "" {
			return errs.NewValueIsRequiredErrorWithCause("process step", fmt.Errorf("step %d is blank", i))
		}
		if _, dup := seen[s]; dup {
			return errs.NewValueIsInvalidErrorWithCause("process steps", fmt.Errorf("step %q is listed twice", s))
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	p.steps = cleaned
	return nil
}
