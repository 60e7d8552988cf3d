// Package pipeline runs the photopages conversion steps. Each step is
// registered by id so the CLI can run one directly or several in the order
// the project config lists them.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/falkman/photopages/internal/config"
	"github.com/falkman/photopages/internal/logging"
)

// Info describes a step's identity and intent.
type Info struct {
	ID          string
	Name        string
	Description string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("pipeline: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("pipeline: name is required for %s", i.ID)
	}
	return nil
}

// Status enumerates step outcomes.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result captures the outcome of a step execution.
type Result struct {
	Step    string
	Status  Status
	Count   int
	Output  string
	Message string
}

// Step is implemented by every conversion.
type Step interface {
	Info() Info
	Run(ctx *Context) (Result, error)
}

// Context carries shared runtime dependencies into every step.
type Context struct {
	Config *config.Config
	Logger logging.Logger
	Now    func() time.Time
}

// NewContext builds a step Context around cfg using the logger carried by
// parent and the wall clock.
func NewContext(parent context.Context, cfg *config.Config) *Context {
	return &Context{Config: cfg, Logger: logging.FromContext(parent), Now: time.Now}
}

// WithClock returns a copy of ctx using clock.
func (ctx *Context) WithClock(clock func() time.Time) *Context {
	clone := *ctx
	clone.Now = clock
	return &clone
}

func (ctx *Context) clock() func() time.Time {
	if ctx.Now == nil {
		return time.Now
	}
	return ctx.Now
}

// Run executes ids in order and stops at the first failure. Unknown ids are
// rejected before any step runs. Results for the steps that ran are returned
// either way.
func Run(ctx *Context, reg *Registry, ids []string) ([]Result, error) {
	if err := reg.Validate(ids); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		step, _ := reg.Resolve(id)
		log := ctx.Logger.With("step", id)
		log.Debug("running step")
		res, err := step.Run(ctx)
		res.Step = id
		if err != nil {
			res.Status = StatusFailed
			res.Message = err.Error()
			results = append(results, res)
			return results, fmt.Errorf("pipeline: %s: %w", id, err)
		}
		results = append(results, res)
		log.Info("step finished", "count", res.Count, "output", res.Output)
	}
	return results, nil
}
