package pipeline

import (
	"fmt"
	"strings"
)

// Registry holds the known steps in registration order. That order is the
// natural pipeline order reported by IDs.
type Registry struct {
	steps map[string]Step
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{steps: map[string]Step{}}
}

// Register adds step under its Info ID. Returns an error if the info is
// incomplete or the ID already exists.
func (r *Registry) Register(step Step) error {
	if step == nil {
		return fmt.Errorf("pipeline: step is required")
	}
	info := step.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	if _, exists := r.steps[info.ID]; exists {
		return fmt.Errorf("pipeline: %s already registered", info.ID)
	}
	r.steps[info.ID] = step
	r.order = append(r.order, info.ID)
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(step Step) {
	if err := r.Register(step); err != nil {
		panic(err)
	}
}

// Resolve returns the step registered under id.
func (r *Registry) Resolve(id string) (Step, error) {
	step, ok := r.steps[id]
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown step %s (want one of %s)", id, strings.Join(r.order, ", "))
	}
	return step, nil
}

// IDs returns the registered step identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string{}, r.order...)
}

// Validate reports the first id in ids that is not registered, so a pipeline
// is rejected before any step touches the filesystem.
func (r *Registry) Validate(ids []string) error {
	for _, id := range ids {
		if _, err := r.Resolve(id); err != nil {
			return err
		}
	}
	return nil
}
