package core

import (
	"testing"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricsRenderModel(t *testing.T) {
	model := BuildMetricsRenderModel(cvss.DefaultCatalog())

	assert.Equal(t, "2.10", model.Version)
	assert.Equal(t, "CVSS v2.10 Metrics", model.Title)
	assert.Equal(t, schema.SeverityBands, model.Severities)
	require.Len(t, model.Tiers, 3)

	counts := []int{6, 3, 5}
	for i, tier := range model.Tiers {
		assert.Equal(t, schema.AllTiers[i], tier.Tier)
		assert.NotEmpty(t, tier.Formula)
		assert.Len(t, tier.Metrics, counts[i])
	}

	cdp := model.Tiers[2].Metrics[0]
	assert.Equal(t, schema.CollateralDamagePotential, cdp.ShortName)
	require.NotEmpty(t, cdp.Options)
	assert.True(t, cdp.Options[0].Default)
	assert.Equal(t, "ND", cdp.Options[0].Code)
	assert.Equal(t, 0.0, cdp.Options[0].Weight)
	for _, opt := range cdp.Options[1:] {
		assert.False(t, opt.Default)
	}
}
