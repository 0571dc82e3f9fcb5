package ledger

import (
	"context"
	"log/slog"
)

// step is one action of a multi-step operation. A step with an undo is
// compensated when a later step fails; a step without one is forward-only.
type step struct {
	name string
	run  func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// stepFailure describes where a step sequence stopped.
type stepFailure struct {
	step      string
	err       error
	completed []string

	// undoStep and undoErr are set when a compensation failed. Compensation
	// stops at the first failure.
	undoStep string
	undoErr  error
}

// compensated reports whether every completed step was rolled back.
func (f *stepFailure) compensated() bool {
	return f.undoErr == nil
}

// runSteps executes steps in order. On failure it runs the undo of every
// completed step in reverse order and returns what happened; it returns nil
// when all steps succeed.
func runSteps(ctx context.Context, op string, steps []step) *stepFailure {
	completed := make([]string, 0, len(steps))
	for i, s := range steps {
		err := s.run(ctx)
		if err == nil {
			completed = append(completed, s.name)
			continue
		}

		f := &stepFailure{step: s.name, err: err, completed: completed}
		// Compensate even if the request context is done.
		undoCtx := context.WithoutCancel(ctx)
		for j := i - 1; j >= 0; j-- {
			if steps[j].undo == nil {
				continue
			}
			slog.Debug("Compensating step", "op", op, "step", steps[j].name, "failed_step", s.name)
			if uerr := steps[j].undo(undoCtx); uerr != nil {
				f.undoStep = steps[j].name
				f.undoErr = uerr
				break
			}
		}
		return f
	}
	return nil
}
