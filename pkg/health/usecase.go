package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report lists every dependency; Ready is false when any check failed.
type Report struct {
	Ready  bool          `json:"ready"`
	Checks []CheckResult `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready stops at the first failing dependency.
	Ready(ctx context.Context) error
	// Report runs every check.
	Report(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}

func (s *service) Report(ctx context.Context) Report {
	rep := Report{Ready: true, Checks: make([]CheckResult, 0, len(s.checkers))}
	for _, ch := range s.checkers {
		res := CheckResult{Name: ch.Name(), OK: true}
		if err := ch.Check(ctx); err != nil {
			res.OK = false
			res.Error = err.Error()
			rep.Ready = false
		}
		rep.Checks = append(rep.Checks, res)
	}
	return rep
}
