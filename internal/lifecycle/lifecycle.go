package lifecycle

import (
	"errors"
	"fmt"
)

// Step is one start-up stage with its symmetric teardown.
type Step struct {
	Up   func() error
	Down func() error
	Name string
}

// StepError reports which step failed and carries the original cause.
type StepError struct {
	Err  error
	Step string
}

// Error returns the error string.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the original cause.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Sequence starts steps in order and stops them in reverse order.
// Only steps that completed Up are ever passed to Down.
type Sequence struct {
	OnRollback func(step string, err error)
	steps      []Step
	started    int
}

// New creates a sequence over steps.
func New(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Started reports how many steps are currently up.
func (s *Sequence) Started() int {
	return s.started
}

// Begin runs Up for every step in order. When a step fails, the steps that
// already completed are torn down in reverse order and the original failure
// is returned wrapped in a *StepError.
func (s *Sequence) Begin() error {
	if s.started != 0 {
		return fmt.Errorf("lifecycle: sequence already started")
	}
	for i, step := range s.steps {
		if step.Up != nil {
			if err := step.Up(); err != nil {
				s.started = i
				s.Rollback()
				return &StepError{Step: step.Name, Err: err}
			}
		}
		s.started = i + 1
	}
	return nil
}

// Rollback tears down completed steps in reverse order, ignoring Down errors
// other than reporting them through OnRollback.
func (s *Sequence) Rollback() {
	for s.started > 0 {
		s.started--
		step := s.steps[s.started]
		if step.Down == nil {
			continue
		}
		if err := step.Down(); err != nil && s.OnRollback != nil {
			s.OnRollback(step.Name, err)
		}
	}
}

// End tears down completed steps in reverse order and joins every Down error.
func (s *Sequence) End() error {
	var errs []error
	for s.started > 0 {
		s.started--
		step := s.steps[s.started]
		if step.Down == nil {
			continue
		}
		if err := step.Down(); err != nil {
			errs = append(errs, &StepError{Step: step.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}
