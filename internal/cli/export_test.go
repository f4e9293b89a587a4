package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

func exportTestTimeline() *domain.Timeline {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	return &domain.Timeline{
		ProjectID:   42,
		ProjectName: "Payment rework",
		StartDate:   day(3),
		Snapshots: []*domain.DailySnapshot{
			{ProjectID: 42, Date: day(3), TotalHours: 16, RemainingHours: 16, AddedHours: 16, ActiveCount: 2},
			{ProjectID: 42, Date: day(4), TotalHours: 16, CompletedHours: 8, RemainingHours: 8, ActiveCount: 1, CompletedCount: 1},
		},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportCSV(&buf, exportTestTimeline()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "date", records[0][0])
	assert.Equal(t, "remaining_hours", records[0][3])

	assert.Equal(t, "2025-03-03", records[1][0])
	assert.Equal(t, "16", records[1][1])
	assert.Equal(t, "2025-03-04", records[2][0])
	assert.Equal(t, "8", records[2][3])
	assert.Equal(t, "1", records[2][8])
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportJSON(&buf, exportTestTimeline()))

	var out timelineJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 42, out.ProjectID)
	assert.Equal(t, "Payment rework", out.ProjectName)
	require.Len(t, out.Snapshots, 2)
	assert.Equal(t, "2025-03-03", out.Snapshots[0].Date)
	assert.Equal(t, 16.0, out.Snapshots[0].TotalHours)
	assert.Equal(t, 8.0, out.Snapshots[1].RemainingHours)
}

func TestExportTimelineToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burndown.csv")
	require.NoError(t, exportTimeline(exportTestTimeline(), "csv", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-03-03")
}

func TestExportTimelineUnknownFormat(t *testing.T) {
	err := exportTimeline(exportTestTimeline(), "xml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}
