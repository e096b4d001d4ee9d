// Package parquet provides data structures and functions for exporting CVSS
// scores to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/cvss2/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreRecord is the score of one tier of one vector.
// A batch line that failed to score becomes a single record with Error set.
type ScoreRecord struct {
	// Line is the batch input line, or 0 for a single vector
	Line int32 `parquet:"line,snappy"`

	// Vector is the full vector that was scored (every supplied tier)
	Vector string `parquet:"vector,snappy"`

	// Version is the CVSS version of the equations
	Version string `parquet:"version,snappy"`

	// Tier is base, temporal or environmental (nullable for failed lines)
	Tier *string `parquet:"tier,optional,snappy"`

	// TierVector is the vector of this tier alone (nullable)
	TierVector *string `parquet:"tier_vector,optional,snappy"`

	// Score is the rounded tier score
	Score float64 `parquet:"score,snappy"`

	// Severity is the NVD rating of Score (nullable for failed lines)
	Severity *string `parquet:"severity,optional,snappy"`

	// Error is the reason a batch line was not scored (nullable)
	Error *string `parquet:"error,optional,snappy"`
}

// RecordsFromReport flattens a score report into one record per tier.
func RecordsFromReport(report *schema.ScoreReport) []ScoreRecord {
	records := make([]ScoreRecord, 0, len(report.Tiers))
	for _, tr := range report.Tiers {
		records = append(records, ScoreRecord{
			Vector:     report.Vector,
			Version:    report.Version,
			Tier:       ptr(string(tr.Tier)),
			TierVector: ptr(tr.Vector),
			Score:      tr.Score,
			Severity:   ptr(string(tr.Severity)),
		})
	}
	return records
}

// RecordsFromBatch flattens a batch into one record per scored tier, plus one per failed line.
func RecordsFromBatch(result *schema.BatchResult, version string) []ScoreRecord {
	var records []ScoreRecord
	for _, e := range result.Entries {
		if e.Error != "" {
			records = append(records, ScoreRecord{
				Line:    int32(e.Line),
				Vector:  e.Input,
				Version: version,
				Error:   ptr(e.Error),
			})
			continue
		}
		scores := map[schema.Tier]*float64{
			schema.BaseTier:          e.Base,
			schema.TemporalTier:      e.Temporal,
			schema.EnvironmentalTier: e.Environmental,
		}
		for _, tier := range schema.AllTiers {
			score := scores[tier]
			if score == nil {
				continue
			}
			records = append(records, ScoreRecord{
				Line:     int32(e.Line),
				Vector:   e.Vector,
				Version:  version,
				Tier:     ptr(string(tier)),
				Score:    *score,
				Severity: ptr(string(schema.GetSeverity(*score))),
			})
		}
	}
	return records
}

// WriteScoreRecordsParquet writes a slice of ScoreRecord structs to a Parquet file.
func WriteScoreRecordsParquet(data []ScoreRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the ScoreRecord struct tags
	writer := parquet.NewGenericWriter[ScoreRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
