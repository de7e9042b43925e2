package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(ctx context.Context) Result {
	return Result{Name: c.name, Items: c.items}
}

func TestRun_Report(t *testing.T) {
	report := Run(context.Background(),
		staticCheck{name: "a", items: []CheckItem{Pass("one", ""), Warn("two", "meh")}},
		staticCheck{name: "b", items: []CheckItem{Repairable("three", "broken"), Fail("four", "gone")}},
	)

	assert.False(t, report.Healthy)
	assert.Equal(t, Counts{Passed: 1, Warned: 1, Failed: 2}, report.Summary)
	assert.Equal(t, 1, report.Fixable)
	assert.Equal(t, "Run 'setlist doctor --fix' to repair 1 issue(s)", report.FixHint())
	require.Len(t, report.Checks, 2)
	assert.Equal(t, "b", report.Checks[1].Name)
}

func TestRun_HealthyHasNoHint(t *testing.T) {
	report := Run(context.Background(), staticCheck{name: "a", items: []CheckItem{Pass("one", "")}})

	assert.True(t, report.Healthy)
	assert.Empty(t, report.FixHint())
}

func TestReport_JSONStatusNames(t *testing.T) {
	report := Run(context.Background(), NewConfigCheck(nil, ""))

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var out struct {
		Healthy bool `json:"healthy"`
		Checks  []struct {
			Items []struct {
				Status string `json:"status"`
			} `json:"items"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.False(t, out.Healthy)
	assert.Equal(t, "fail", out.Checks[0].Items[0].Status)
}
