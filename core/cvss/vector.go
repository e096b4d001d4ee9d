package cvss

import (
	"fmt"
	"strings"

	"github.com/huangsam/cvss2/schema"
)

const (
	vectorSeparator = "/"
	tokenSeparator  = ":"
)

// FormatVector serializes one tier as "SHORT:code/SHORT:code/..." in vector order.
func FormatVector(v *Vulnerability, tier schema.Tier) (string, error) {
	metrics, err := v.Metrics(tier)
	if err != nil {
		return "", err
	}
	tokens := make([]string, len(metrics))
	for i, m := range metrics {
		tokens[i] = m.VectorToken()
	}
	return strings.Join(tokens, vectorSeparator), nil
}

// vectorToken is one split "SHORT:code" pair.
type vectorToken struct {
	raw   string
	short schema.ShortName
	code  string
}

func splitToken(raw string) (vectorToken, bool) {
	short, code, ok := strings.Cut(raw, tokenSeparator)
	if !ok || short == "" || code == "" || strings.Contains(code, tokenSeparator) {
		return vectorToken{raw: raw}, false
	}
	return vectorToken{raw: raw, short: schema.ShortName(short), code: code}, true
}

func splitTokens(tier schema.Tier, s string) ([]vectorToken, error) {
	if s == "" {
		return nil, &VectorError{Tier: tier, Hint: "vector is empty"}
	}
	parts := strings.Split(s, vectorSeparator)
	tokens := make([]vectorToken, len(parts))
	for i, p := range parts {
		tok, ok := splitToken(p)
		if !ok {
			return nil, &VectorError{Tier: tier, Position: i + 1, Token: p, Hint: "expected SHORT:CODE"}
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// ParseTierVector parses the vector of a single tier. The tokens must name
// exactly the tier's metrics in vector order, each with a valid code.
func ParseTierVector(cat *Catalog, tier schema.Tier, s string) ([]*Metric, error) {
	if _, ok := schema.ValidTiers[tier]; !ok {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}
	tokens, err := splitTokens(tier, s)
	if err != nil {
		return nil, err
	}
	return parseTierTokens(cat, tier, tokens, 0)
}

// parseTierTokens checks names and count before codes. offset shifts reported positions.
func parseTierTokens(cat *Catalog, tier schema.Tier, tokens []vectorToken, offset int) ([]*Metric, error) {
	expected := cat.ShortNames(tier)
	for i, tok := range tokens {
		if i >= len(expected) {
			return nil, &VectorError{
				Tier: tier, Position: offset + i + 1, Token: tok.raw,
				Hint: fmt.Sprintf("too many elements, expected %d", len(expected)),
			}
		}
		if tok.short != expected[i] {
			return nil, &VectorError{
				Tier: tier, Position: offset + i + 1, Token: tok.raw,
				Hint: fmt.Sprintf("expected %s, found %s", expected[i], tok.short),
			}
		}
	}
	if len(tokens) < len(expected) {
		missing := make([]string, 0, len(expected)-len(tokens))
		for _, short := range expected[len(tokens):] {
			missing = append(missing, string(short))
		}
		return nil, &VectorError{
			Tier: tier,
			Hint: fmt.Sprintf("too few elements, got %d of %d, missing %s", len(tokens), len(expected), strings.Join(missing, ", ")),
		}
	}

	metrics := make([]*Metric, len(tokens))
	for i, tok := range tokens {
		tmpl, _ := cat.Template(tok.short)
		m, err := tmpl.Instantiate(tok.code)
		if err != nil {
			return nil, err
		}
		metrics[i] = m
	}
	return metrics, nil
}

// ParseVector parses a full vulnerability vector: the base group, optionally
// followed by the temporal group, optionally followed by the environmental group.
// Surrounding whitespace and parentheses, as printed by NVD, are ignored.
func ParseVector(cat *Catalog, s string) (*Vulnerability, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	tokens, err := splitTokens(schema.BaseTier, s)
	if err != nil {
		return nil, err
	}

	var metrics []*Metric
	pos := 0
	for _, tier := range schema.AllTiers {
		expected := cat.ShortNames(tier)
		if tier != schema.BaseTier && (pos >= len(tokens) || tokens[pos].short != expected[0]) {
			continue
		}
		end := min(pos+len(expected), len(tokens))
		group, err := parseTierTokens(cat, tier, tokens[pos:end], pos)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, group...)
		pos = end
	}
	if pos < len(tokens) {
		return nil, &VectorError{
			Tier: tierOfToken(cat, tokens[pos-1]), Position: pos + 1, Token: tokens[pos].raw,
			Hint: "unexpected trailing element",
		}
	}
	return NewVulnerability(cat, metrics...)
}

func tierOfToken(cat *Catalog, tok vectorToken) schema.Tier {
	tier, _ := cat.TierOf(tok.short)
	return tier
}
