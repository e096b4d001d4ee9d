package cvss

import (
	"testing"

	gocvss20 "github.com/pandatix/go-cvss/20"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoresAgreeWithGoCVSS compares against an independent v2 implementation.
// That implementation rounds half away from zero, so ties may differ by one step.
func TestScoresAgreeWithGoCVSS(t *testing.T) {
	vectors := []string{
		"AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H",
		"AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:M",
		"AV:N/AC:L/Au:N/C:P/I:P/A:P/E:POC/RL:OF/RC:UC/CDP:LM/TD:M/CR:L/IR:M/AR:H",
		"AV:A/AC:M/Au:S/C:P/I:N/A:N/E:U/RL:TF/RC:UR/CDP:L/TD:L/CR:H/IR:L/AR:L",
		"AV:L/AC:H/Au:M/C:N/I:N/A:N/E:ND/RL:ND/RC:ND/CDP:ND/TD:ND/CR:ND/IR:ND/AR:ND",
		"AV:L/AC:L/Au:S/C:C/I:P/A:N/E:H/RL:W/RC:C/CDP:MH/TD:N/CR:H/IR:H/AR:M",
		"AV:N/AC:M/Au:N/C:P/I:C/A:P/E:F/RL:U/RC:UR/CDP:N/TD:H/CR:ND/IR:L/AR:H",
	}

	cat := DefaultCatalog()
	for _, vector := range vectors {
		t.Run(vector, func(t *testing.T) {
			oracle, err := gocvss20.ParseVector(vector)
			require.NoError(t, err)

			v, err := ParseVector(cat, vector)
			require.NoError(t, err)
			e := NewEngineFor(v, V210{})

			base, err := e.BaseScore()
			require.NoError(t, err)
			temporal, err := e.TemporalScore()
			require.NoError(t, err)
			env, err := e.EnvironmentalScore()
			require.NoError(t, err)

			assert.InDelta(t, oracle.BaseScore(), base, 0.1001)
			assert.InDelta(t, oracle.TemporalScore(), temporal, 0.1001)
			assert.InDelta(t, oracle.EnvironmentalScore(), env, 0.1001)
		})
	}
}
