// Package doctor runs health checks over the setlist configuration and the
// saved state, and can repair what it finds when asked to.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = StatusPass
	case "warn":
		*s = StatusWarn
	case "fail":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// CheckItem is one reported line within a check.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

func Pass(label, detail string) CheckItem {
	return CheckItem{Label: label, Status: StatusPass, Detail: detail}
}

func Warn(label, detail string) CheckItem {
	return CheckItem{Label: label, Status: StatusWarn, Detail: detail}
}

func Fail(label, detail string) CheckItem {
	return CheckItem{Label: label, Status: StatusFail, Detail: detail}
}

// Repairable is a failure that `doctor --fix` knows how to repair.
func Repairable(label, detail string) CheckItem {
	item := Fail(label, detail)
	item.Fixable = true
	return item
}

// Result groups the items reported by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check is a single doctor check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Counts tallies item statuses.
type Counts struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Report is the outcome of a full doctor run.
type Report struct {
	Healthy bool     `json:"healthy"`
	Summary Counts   `json:"summary"`
	Fixable int      `json:"fixable,omitempty"`
	Checks  []Result `json:"checks"`
}

// Run executes the checks in order and builds the report.
func Run(ctx context.Context, checks ...Check) Report {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}

	counts := Tally(results)
	return Report{
		Healthy: counts.Failed == 0,
		Summary: counts,
		Fixable: CountFixable(results),
		Checks:  results,
	}
}

// FixHint tells the user how to repair fixable items. Empty when there are none.
func (r Report) FixHint() string {
	if r.Fixable == 0 {
		return ""
	}
	return fmt.Sprintf("Run 'setlist doctor --fix' to repair %d issue(s)", r.Fixable)
}

// Tally counts passed, warned and failed items across results.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
		}
	}
	return c
}

// CountFixable returns the number of unresolved fixable items.
func CountFixable(results []Result) int {
	count := 0
	for _, r := range results {
		for _, item := range r.Items {
			if item.Fixable && item.Status != StatusPass {
				count++
			}
		}
	}
	return count
}
