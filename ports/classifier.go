// Package ports defines the interfaces the prediction core consumes.
package ports

import (
	"context"

	"crimerisk/domain/encoding"
	"crimerisk/domain/incident"
)

// ClassifierPort is the trained binary classifier as the core sees it: a
// black box mapping a fixed-shape vector to a class-probability pair.
// Implementations are loaded once at process start, are immutable
// afterwards, and must be reentrant so concurrent requests can share a
// single handle without locking.
type ClassifierPort interface {
	// PredictProbability returns (P(negative class), P(positive class))
	// for one encoded incident. The pair sums to 1.
	PredictProbability(v encoding.FeatureVector) (pNeg, pPos float64, err error)

	// Info describes the loaded artifact.
	Info() ModelInfo
}

// ModelInfo describes a loaded classifier artifact.
type ModelInfo struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	ModelType     string   `json:"model_type"`
	TreeCount     int      `json:"tree_count"`
	FeatureNames  []string `json:"feature_names"`
	PositiveClass string   `json:"positive_class"`
}

// BatchSourcePort yields incident reports parsed from an uploaded sheet.
// A row that cannot be parsed is returned with its error set rather than
// silently dropped; only a structurally unreadable sheet fails the call.
type BatchSourcePort interface {
	ReadReports(ctx context.Context) ([]ParsedRow, error)
}

// ParsedRow is one sheet row: either a report or the reason it was
// rejected. Line is the 1-based row number including the header.
type ParsedRow struct {
	Line   int
	Report incident.Report
	Err    error
}

// EnsembleDiagnoserPort is implemented by classifiers that can describe
// the shape of their ensemble. Optional: callers type-assert for it.
type EnsembleDiagnoserPort interface {
	EnsembleDiagnostics() (EnsembleDiagnostics, error)
}

// EnsembleDiagnostics summarizes per-tree structure of an ensemble model.
type EnsembleDiagnostics struct {
	TreeDepth Distribution `json:"tree_depth"`
	LeafCount Distribution `json:"leaf_count"`
}

// Distribution is a summary of a per-tree metric across the ensemble.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}
