package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// maxBatchLineBytes caps one batch line. Longer lines are recorded as failed
// entries instead of being scored.
const maxBatchLineBytes = 64 * 1024

// GetBatchResult scores one vector per line of r, in order.
// Blank lines and lines starting with '#' are skipped. A line that fails to
// parse or score is recorded with its error and does not stop the batch.
func GetBatchResult(ctx context.Context, cfg *contract.Config, r io.Reader) (*schema.BatchResult, error) {
	result := &schema.BatchResult{Entries: []schema.BatchEntry{}}

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read batch input: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNo++

		line := strings.TrimSpace(raw)
		if line != "" && !strings.HasPrefix(line, "#") {
			entry := scoreBatchLine(cfg, lineNo, line)
			result.Summary.Total++
			if entry.Error != "" {
				result.Summary.Failed++
				slog.DebugContext(ctx, "batch line failed", "line", lineNo, "error", entry.Error)
			} else {
				result.Summary.Scored++
				if entry.Base != nil && *entry.Base > result.Summary.MaxBase {
					result.Summary.MaxBase = *entry.Base
				}
			}
			result.Entries = append(result.Entries, entry)
		}
		if readErr != nil {
			break
		}
	}
	return result, nil
}

// scoreBatchLine scores a single vector line.
func scoreBatchLine(cfg *contract.Config, lineNo int, line string) schema.BatchEntry {
	if len(line) > maxBatchLineBytes {
		return schema.BatchEntry{
			Line:  lineNo,
			Input: line[:64] + "...",
			Error: fmt.Sprintf("line exceeds %d bytes", maxBatchLineBytes),
		}
	}
	entry := schema.BatchEntry{Line: lineNo, Input: line}

	vuln, err := resolveVector(cfg, line)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	engine := cvss.NewEngineFor(vuln, cvss.V210{})

	scores := make(map[schema.Tier]*float64, len(schema.AllTiers))
	for _, tier := range resolveTiers(cfg, vuln) {
		score, err := engine.Score(tier)
		if err != nil {
			entry.Error = err.Error()
			return entry
		}
		scores[tier] = &score
	}

	entry.Vector = engine.Vector()
	entry.Base = scores[schema.BaseTier]
	entry.Temporal = scores[schema.TemporalTier]
	entry.Environmental = scores[schema.EnvironmentalTier]
	if final, ok := entry.FinalScore(); ok {
		entry.Severity = schema.GetSeverity(final)
	}
	return entry
}
