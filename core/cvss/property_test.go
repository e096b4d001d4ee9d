package cvss

import (
	"slices"
	"testing"

	"github.com/huangsam/cvss2/schema"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// selectionsFromIndexes picks one option per metric of every tier, cycling through idx.
func selectionsFromIndexes(cat *Catalog, idx []int) map[schema.ShortName]string {
	sel := make(map[schema.ShortName]string)
	i := 0
	for _, tier := range schema.AllTiers {
		for _, tmpl := range cat.Templates(tier) {
			n := 0
			if len(idx) > 0 {
				n = idx[i%len(idx)]
			}
			sel[tmpl.ShortName] = tmpl.Options[n%len(tmpl.Options)].Code()
			i++
		}
	}
	return sel
}

func TestMetricSelectionInvariants(t *testing.T) {
	cat := DefaultCatalog()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	allShorts := slices.Concat(schema.BaseShortNames, schema.TemporalShortNames, schema.EnvironmentalShortNames)

	properties.Property("select then read back the same code", prop.ForAll(
		func(metricIdx, optionIdx int) bool {
			tmpl, _ := cat.Template(allShorts[metricIdx%len(allShorts)])
			m, err := tmpl.Instantiate("")
			if err != nil {
				return false
			}
			code := tmpl.Options[optionIdx%len(tmpl.Options)].Code()
			return m.Select(code) == nil && m.SelectedValue().Code() == code
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.Property("invalid select leaves selection unchanged", prop.ForAll(
		func(metricIdx, optionIdx int, code string) bool {
			tmpl, _ := cat.Template(allShorts[metricIdx%len(allShorts)])
			before := tmpl.Options[optionIdx%len(tmpl.Options)].Code()
			m, err := tmpl.Instantiate(before)
			if err != nil {
				return false
			}
			if _, ok := m.Lookup(code); ok {
				return true
			}
			err = m.Select(code)
			return err != nil && m.SelectedCode() == before
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestVectorRoundTripProperties(t *testing.T) {
	cat := DefaultCatalog()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("format then parse reproduces every selection", prop.ForAll(
		func(idx []int) bool {
			v, err := FromSelections(cat, selectionsFromIndexes(cat, idx))
			if err != nil {
				return false
			}
			vector := NewEngineFor(v, V210{}).Vector()
			parsed, err := ParseVector(cat, vector)
			if err != nil {
				return false
			}
			want, got := v.Selections(), parsed.Selections()
			for short, code := range want {
				if got[short] != code {
					return false
				}
			}
			return len(got) == len(want)
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.Property("scores stay within 0 and 10", prop.ForAll(
		func(idx []int) bool {
			v, err := FromSelections(cat, selectionsFromIndexes(cat, idx))
			if err != nil {
				return false
			}
			e := NewEngineFor(v, V210{})
			for _, tier := range schema.AllTiers {
				s, err := e.Score(tier)
				if err != nil || s < 0 || s > 10 {
					return false
				}
			}
			adj, err := e.AdjustedImpact()
			return err == nil && adj <= 10
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.Property("base score is idempotent", prop.ForAll(
		func(idx []int) bool {
			v, err := FromSelections(cat, selectionsFromIndexes(cat, idx))
			if err != nil {
				return false
			}
			e := NewEngineFor(v, V210{})
			a, errA := e.BaseScore()
			b, errB := e.BaseScore()
			return errA == nil && errB == nil && a == b
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.TestingRun(t)
}
