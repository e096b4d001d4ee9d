package cvss

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/cvss2/schema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog_v210.yaml
var catalogV210 []byte

// validate is a singleton validator instance.
var validate = validator.New()

// catalogFile mirrors the YAML layout of a catalog.
type catalogFile struct {
	Version string        `yaml:"version" validate:"required"`
	Tiers   []catalogTier `yaml:"tiers" validate:"required,len=3,dive"`
}

type catalogTier struct {
	Tier    string          `yaml:"tier" validate:"required,oneof=base temporal environmental"`
	Metrics []catalogMetric `yaml:"metrics" validate:"required,min=1,dive"`
}

type catalogMetric struct {
	Name    string          `yaml:"name" validate:"required"`
	Short   string          `yaml:"short" validate:"required"`
	Options []catalogOption `yaml:"options" validate:"required,min=1,dive"`
}

type catalogOption struct {
	Label       string  `yaml:"label" validate:"required"`
	Code        string  `yaml:"code" validate:"required"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description"`
}

// Template describes one metric of the catalog before any selection is made.
type Template struct {
	Name      string
	ShortName schema.ShortName
	Tier      schema.Tier
	Options   []MetricValue
}

// Instantiate builds a live Metric. An empty code selects the default option.
func (t *Template) Instantiate(code string) (*Metric, error) {
	return NewMetric(t.Name, t.ShortName, t.Options, code)
}

// Catalog is the read-only table of metric templates, grouped by tier.
type Catalog struct {
	version string
	tiers   map[schema.Tier][]*Template
	byShort map[schema.ShortName]*Template
}

// DefaultCatalog returns the built-in CVSS v2.10 catalog.
// It is decoded once per process and safe to share.
func DefaultCatalog() *Catalog {
	cat, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return cat
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(catalogV210))
})

// LoadCatalog decodes and validates a catalog in YAML form.
// Every tier must list exactly its fixed metrics in vector order.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid catalog: %s failed on '%s'", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	cat := &Catalog{
		version: file.Version,
		tiers:   make(map[schema.Tier][]*Template, len(schema.AllTiers)),
		byShort: make(map[schema.ShortName]*Template),
	}
	for i, ft := range file.Tiers {
		tier := schema.Tier(ft.Tier)
		if tier != schema.AllTiers[i] {
			return nil, fmt.Errorf("invalid catalog: tier %d is %q, expected %q", i+1, tier, schema.AllTiers[i])
		}
		expected := schema.ShortNamesFor(tier)
		if len(ft.Metrics) != len(expected) {
			return nil, fmt.Errorf("invalid catalog: %s tier has %d metrics, expected %d", tier, len(ft.Metrics), len(expected))
		}
		for j, fm := range ft.Metrics {
			short := schema.ShortName(fm.Short)
			if short != expected[j] {
				return nil, fmt.Errorf("invalid catalog: %s tier position %d is %s, expected %s", tier, j+1, short, expected[j])
			}
			tmpl, err := buildTemplate(tier, fm)
			if err != nil {
				return nil, err
			}
			cat.tiers[tier] = append(cat.tiers[tier], tmpl)
			cat.byShort[short] = tmpl
		}
	}
	return cat, nil
}

// buildTemplate converts one decoded metric, enforcing finite weights and unique codes.
func buildTemplate(tier schema.Tier, fm catalogMetric) (*Template, error) {
	options := make([]MetricValue, 0, len(fm.Options))
	for _, fo := range fm.Options {
		mv, err := NewMetricValue(fo.Label, fo.Code, fo.Weight, fo.Description)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog: %s: %w", fm.Short, err)
		}
		options = append(options, mv)
	}
	tmpl := &Template{
		Name:      fm.Name,
		ShortName: schema.ShortName(fm.Short),
		Tier:      tier,
		Options:   options,
	}
	if _, err := tmpl.Instantiate(""); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// Version returns the CVSS version the catalog describes.
func (c *Catalog) Version() string { return c.version }

// Templates returns the templates of a tier in vector order.
func (c *Catalog) Templates(tier schema.Tier) []*Template {
	return slices.Clone(c.tiers[tier])
}

// Template looks up a template by short name.
func (c *Catalog) Template(short schema.ShortName) (*Template, bool) {
	t, ok := c.byShort[short]
	return t, ok
}

// TierOf returns the tier a short name belongs to.
func (c *Catalog) TierOf(short schema.ShortName) (schema.Tier, bool) {
	t, ok := c.byShort[short]
	if !ok {
		return "", false
	}
	return t.Tier, true
}

// ShortNames returns the short names of a tier in vector order.
func (c *Catalog) ShortNames(tier schema.Tier) []schema.ShortName {
	templates := c.tiers[tier]
	names := make([]schema.ShortName, len(templates))
	for i, t := range templates {
		names[i] = t.ShortName
	}
	return names
}

// instantiateDefaults builds every metric of a tier with its default selected.
func (c *Catalog) instantiateDefaults(tier schema.Tier) ([]*Metric, error) {
	templates := c.tiers[tier]
	metrics := make([]*Metric, 0, len(templates))
	for _, t := range templates {
		m, err := t.Instantiate("")
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
