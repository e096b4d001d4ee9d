//go:build integration

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nvdExample = "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H"

func TestScoreCommand(t *testing.T) {
	t.Run("plain lines", func(t *testing.T) {
		stdout, _, code := runCLI(t, "", "score", "AV:N/AC:L/Au:N/C:C/I:C/A:C")
		require.Equal(t, 0, code)
		assert.Contains(t, stdout, "Base Score = 10.0")
		assert.Contains(t, stdout, "Base Vulnerability Vector = AV:N/AC:L/Au:N/C:C/I:C/A:C")
	})

	t.Run("json with verify", func(t *testing.T) {
		stdout, _, code := runCLI(t, "", "score", "--output", "json", "--verify", nvdExample)
		require.Equal(t, 0, code)

		var report schema.ScoreReport
		require.NoError(t, json.Unmarshal([]byte(stdout), &report))
		require.Len(t, report.Tiers, 3)
		assert.Equal(t, 7.8, report.Tiers[0].Score)
		assert.Equal(t, 6.4, report.Tiers[1].Score)
		assert.Equal(t, 9.2, report.Tiers[2].Score)
		require.NotNil(t, report.Verification)
		assert.True(t, report.Verification.Agrees)
	})

	t.Run("malformed vector fails", func(t *testing.T) {
		_, stderr, code := runCLI(t, "", "score", "AV:N/AC:L")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Cannot score vector")
	})

	t.Run("pdf needs an output file", func(t *testing.T) {
		_, stderr, code := runCLI(t, "", "score", "--output", "pdf", "AV:N/AC:L/Au:N/C:C/I:C/A:C")
		assert.NotEqual(t, 0, code)
		assert.Contains(t, stderr, "requires --output-file")
	})

	t.Run("pdf report", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.pdf")
		_, _, code := runCLI(t, "", "score", "--all", "--complete", "--output", "pdf", "--output-file", out, "AV:N/AC:L/Au:N/C:C/I:C/A:C")
		require.Equal(t, 0, code)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(data[:5]))
	})
}

func TestCheckCommand(t *testing.T) {
	stdout, _, code := runCLI(t, "", "check", "AV:N/AC:L/Au:N/C:P/I:N/A:N")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "✅ All tiers passed policy checks")

	stdout, _, code = runCLI(t, "", "check", "AV:N/AC:L/Au:N/C:C/I:C/A:C")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "❌ Policy check failed")

	_, _, code = runCLI(t, "", "check", "--thresholds-override", "base:10", "AV:N/AC:L/Au:N/C:C/I:C/A:C")
	assert.Equal(t, 0, code)
}

func TestCompareCommand(t *testing.T) {
	stdout, _, code := runCLI(t, "", "compare", "--output", "json",
		"AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:U/RC:C",
		"AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:OF/RC:C")
	require.Equal(t, 0, code)

	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Details, 2)
	assert.Equal(t, 0.0, result.Details[0].Delta)
	assert.Negative(t, result.Details[1].Delta)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, schema.RemediationLevel, result.Changes[0].ShortName)
}

func TestBatchCommandStdin(t *testing.T) {
	input := "# header\nAV:N/AC:L/Au:N/C:C/I:C/A:C\n\nbogus\n"
	stdout, _, code := runCLI(t, input, "batch", "--output", "json")
	require.Equal(t, 0, code)

	var result schema.BatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, schema.BatchSummary{Total: 2, Scored: 1, Failed: 1, MaxBase: 10.0}, result.Summary)
	assert.Equal(t, 4, result.Entries[1].Line)
}

func TestMetricsAndVersionCommands(t *testing.T) {
	stdout, _, code := runCLI(t, "", "metrics", "--output", "csv", "--precision", "2")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "base,Access Vector,AV,N,Network,1.00,false,Network access")

	stdout, stderr, code := runCLI(t, "", "version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout+stderr, "CVSS:    2.10")
}
