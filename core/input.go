package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// resolveVector parses a full vector, filling the missing tiers with defaults when --complete is set.
func resolveVector(cfg *contract.Config, vector string) (*cvss.Vulnerability, error) {
	vuln, err := cvss.ParseVector(cfg.Catalog, vector)
	if err != nil {
		return nil, err
	}
	if cfg.Complete {
		if err := vuln.Complete(cfg.Catalog); err != nil {
			return nil, err
		}
	}
	return vuln, nil
}

// resolveSelections builds a vulnerability from short name -> code pairs.
func resolveSelections(cfg *contract.Config, selections map[schema.ShortName]string) (*cvss.Vulnerability, error) {
	vuln, err := cvss.FromSelections(cfg.Catalog, selections)
	if err != nil {
		return nil, err
	}
	if cfg.Complete {
		if err := vuln.Complete(cfg.Catalog); err != nil {
			return nil, err
		}
	}
	return vuln, nil
}

// resolveTiers returns the requested tiers, or every tier the input supplied.
func resolveTiers(cfg *contract.Config, vuln *cvss.Vulnerability) []schema.Tier {
	if len(cfg.Tiers) > 0 {
		return slices.Clone(cfg.Tiers)
	}
	return vuln.Tiers()
}

// prefixVector joins the vectors of every tier up to the highest one in tiers.
// This is the shape other CVSS v2 tools expect, since they cannot skip the temporal tier.
func prefixVector(vuln *cvss.Vulnerability, tiers []schema.Tier) (string, error) {
	highest := 0
	for _, tier := range tiers {
		if i := slices.Index(schema.AllTiers, tier); i > highest {
			highest = i
		}
	}

	vector := ""
	for _, tier := range schema.AllTiers[:highest+1] {
		s, err := cvss.FormatVector(vuln, tier)
		if err != nil {
			return "", fmt.Errorf("cannot build %s vector: %w", tier, err)
		}
		if vector != "" {
			vector += "/"
		}
		vector += s
	}
	return vector, nil
}
