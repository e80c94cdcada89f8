package display

import (
	"os"
	"testing"

	"github.com/arthur-debert/binlink/pkg/applier"
	"github.com/arthur-debert/binlink/pkg/hook"
	"github.com/arthur-debert/binlink/pkg/options"
	"github.com/arthur-debert/binlink/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(result *applier.Result) *hook.Report {
	mode := os.FileMode(0755)
	links := []planner.Link{
		{From: "../app/1.sh", To: "/work/bin/1.sh", Source: "/work/app/1.sh", Mode: &mode},
		{From: "../app/2.sh", To: "/work/bin/2.sh", Source: "/work/app/2.sh"},
	}
	if result != nil {
		for i := range result.Outcomes {
			result.Outcomes[i].Link = links[i]
		}
	}
	return &hook.Report{
		Options: &options.Options{Root: "/work", FromDir: "app", ToDir: "bin", Flatten: true},
		Links:   links,
		Result:  result,
	}
}

func TestNewDisplayResult_Plan(t *testing.T) {
	result := NewDisplayResult("plan", sampleReport(nil), "")

	assert.Equal(t, "plan", result.Command)
	assert.Equal(t, "/work", result.Root)
	assert.Equal(t, "app", result.SourceBase)
	assert.Equal(t, "bin", result.DestBase)
	require.Len(t, result.Links, 2)

	assert.Equal(t, DisplayLink{
		Source:      "app/1.sh",
		Destination: "bin/1.sh",
		Target:      "../app/1.sh",
		Filemode:    "0755",
		Status:      StatusPending,
	}, result.Links[0])
	assert.Empty(t, result.Links[1].Filemode)
}

func TestNewDisplayResult_Applied(t *testing.T) {
	report := sampleReport(&applier.Result{Outcomes: []applier.Outcome{
		{Status: applier.StatusCreated},
		{Status: applier.StatusUnchanged},
	}})

	result := NewDisplayResult("install", report, "")
	assert.Equal(t, "created", result.Links[0].Status)
	assert.Equal(t, "unchanged", result.Links[1].Status)
	assert.Equal(t, []StatusCount{{"created", 1}, {"unchanged", 1}}, result.Counts())
}

func TestNewDisplayResult_Skipped(t *testing.T) {
	result := NewDisplayResult("install", nil, "not in development mode")
	assert.Equal(t, "not in development mode", result.Message)
	assert.NotNil(t, result.Links)
	assert.Empty(t, result.Links)
	assert.Empty(t, result.Counts())
}

func TestRelTo(t *testing.T) {
	assert.Equal(t, "bin/x", relTo("/work", "/work/bin/x"))
	assert.Equal(t, "/elsewhere/x", relTo("/work", "/elsewhere/x"))
	assert.Equal(t, "/work/x", relTo("", "/work/x"))
}
