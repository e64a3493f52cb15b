package types

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when an evaluation is invoked with no test
// cases. The run produces no ResultSet.
var ErrEmptyDataset = errors.New("dataset contains no test cases")

// ScoringUnavailableError reports that the metric oracle could not produce
// a score for one (case, metric) pair. It aborts the whole run: a missing
// score must never be read as a passing one.
type ScoringUnavailableError struct {
	Metric    Metric
	CaseIndex int
	Err       error
}

func (e *ScoringUnavailableError) Error() string {
	return fmt.Sprintf("scoring unavailable for metric %q on test case %d: %v", e.Metric, e.CaseIndex, e.Err)
}

func (e *ScoringUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedTestCaseError reports a test case missing a field required by
// its subsystem kind. It is surfaced before any oracle call is made for
// that case.
type MalformedTestCaseError struct {
	System System
	Index  int
	Field  string
}

func (e *MalformedTestCaseError) Error() string {
	return fmt.Sprintf("%s test case %d missing required field: %s", e.System, e.Index, e.Field)
}
