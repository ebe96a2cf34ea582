package solver

import (
	"fmt"
	"strings"

	"github.com/illustrate/illustrate/pkg/constraint"
)

// UnsatisfiableRequiredError reports that one or more required-strength
// constraints could not be satisfied.
type UnsatisfiableRequiredError struct {
	Sources []constraint.Source
}

func (e *UnsatisfiableRequiredError) Error() string {
	descs := make([]string, 0, len(e.Sources))
	for _, s := range e.Sources {
		descs = append(descs, s.Description)
	}
	return fmt.Sprintf("unsatisfiable required constraints: %s", strings.Join(descs, "; "))
}

// NonlinearError reports a constraint the solver cannot express linearly.
// Reserved: the constraint grammar accepted by this module never produces
// one, but the error kind is part of the surfaced taxonomy.
type NonlinearError struct {
	Description string
}

func (e *NonlinearError) Error() string {
	return fmt.Sprintf("nonlinear constraint: %s", e.Description)
}
