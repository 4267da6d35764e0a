package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/aimreport/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `Work Order,Description,Date Created,Building,Inspection Status
1001,Floor: 2 Room: 210 outlet sparking,2024-03-04,548,
1002,Room 014 light out,2024-03-05,485,Complete
1003,Rm 305A door closer,2024-03-06,548,
`

func executeCmd(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("AIMREPORT_LOG_FILE", filepath.Join(t.TempDir(), "aimreport.log"))
	t.Setenv("AIMREPORT_LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleExport), 0o644))

	out := executeCmd(t, "run", input)
	assert.Contains(t, out, "Total:          3")

	reportPath := filepath.Join(dir, "export_report.csv")
	read, err := parser.ReadFile(reportPath)
	require.NoError(t, err)
	require.Len(t, read.Batch.Records, 3)

	// Basement first, then floors 2 and 3.
	assert.Equal(t, "1002", read.Batch.Records[0].ID)
	assert.Equal(t, "1001", read.Batch.Records[1].ID)
	assert.Equal(t, "1003", read.Batch.Records[2].ID)
	assert.EqualValues(t, "Complete", read.Batch.Records[0].Status)
	assert.EqualValues(t, "Pending", read.Batch.Records[1].Status)

	assert.FileExists(t, filepath.Join(dir, "export_report_ETB.csv"))
	assert.FileExists(t, filepath.Join(dir, "export_report_WEB.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "export_report_UNASSIGNED.csv"))

	out = executeCmd(t, "dashboard", reportPath, "--format", "json")
	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	overall := d["overall"].(map[string]any)
	assert.Equal(t, float64(3), overall["total"])
	assert.Len(t, d["buildings"], 2)
}

func TestBuildingsCommand(t *testing.T) {
	out := executeCmd(t, "buildings")
	assert.Contains(t, out, "Emerging Technologies Building")
	assert.Contains(t, out, "0468")
}
