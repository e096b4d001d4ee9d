package cvss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/cvss2/schema"
)

// Sentinel errors for every failure the scoring core can report.
var (
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrDuplicateCode      = errors.New("duplicate code")
	ErrShortNameCollision = errors.New("short name collision")
	ErrMalformedVector    = errors.New("malformed vector")
	ErrEmptyOptionSet     = errors.New("empty option set")
	ErrUnknownMetric      = errors.New("unknown metric")
)

// SelectionError reports a code that is not among a metric's options.
type SelectionError struct {
	Metric    string
	ShortName schema.ShortName
	Code      string
	Valid     []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid value for %s (%s), expected one of %s",
		ErrInvalidSelection, e.Code, e.Metric, e.ShortName, strings.Join(e.Valid, ", "))
}

func (e *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// VectorError reports which positional constraint a vector string violated.
type VectorError struct {
	Tier     schema.Tier
	Position int // 1-based token position, 0 when not tied to a token
	Token    string
	Hint     string
}

func (e *VectorError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s: %s vector, token %d %q: %s", ErrMalformedVector, e.Tier, e.Position, e.Token, e.Hint)
	}
	return fmt.Sprintf("%s: %s vector: %s", ErrMalformedVector, e.Tier, e.Hint)
}

func (e *VectorError) Unwrap() error {
	return ErrMalformedVector
}

// unknownMetric builds an ErrUnknownMetric error naming the missing short names.
func unknownMetric(missing ...schema.ShortName) error {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = string(m)
	}
	return fmt.Errorf("%w: %s", ErrUnknownMetric, strings.Join(names, ", "))
}
