// Package app wires the encoding, classification, and tiering stages
// into the request-level operations the UI and CLI call.
package app

import (
	"context"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"crimerisk/domain/encoding"
	"crimerisk/domain/incident"
	"crimerisk/domain/risk"
	"crimerisk/internal/errors"
	"crimerisk/ports"
)

// PredictionService runs the two-stage predict cycle: encode the raw
// report into the fixed feature vector, then hand it to the classifier
// and bucket the resulting probability. It holds no per-request state;
// the classifier handle is shared and immutable.
type PredictionService struct {
	classifier ports.ClassifierPort
	batchSem   *semaphore.Weighted
}

// NewPredictionService creates the service. batchConcurrency bounds how
// many batch rows are scored at once.
func NewPredictionService(classifier ports.ClassifierPort, batchConcurrency int64) *PredictionService {
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	return &PredictionService{
		classifier: classifier,
		batchSem:   semaphore.NewWeighted(batchConcurrency),
	}
}

// PredictRisk scores one incident report. Errors keep their taxonomy:
// SCHEMA_MISMATCH from the encoder, INFERENCE_ERROR from the classifier.
// No retries anywhere; the cycle is deterministic plus one stateless
// classifier call.
func (s *PredictionService) PredictRisk(r incident.Report) (risk.Assessment, error) {
	vector, err := encoding.Encode(r)
	if err != nil {
		return risk.Assessment{}, err
	}

	pNeg, pPos, err := s.classifier.PredictProbability(vector)
	if err != nil {
		return risk.Assessment{}, errors.WithCode(errors.CodeInference, err)
	}

	return risk.NewAssessment(pNeg, pPos), nil
}

// RowScore is the outcome of scoring one batch row.
type RowScore struct {
	Line       int              `json:"line"`
	Assessment *risk.Assessment `json:"assessment,omitempty"`
	Error      string           `json:"error,omitempty"`
	ErrorCode  string           `json:"error_code,omitempty"`
}

// BatchResult summarizes a scored sheet.
type BatchResult struct {
	Rows    []RowScore `json:"rows"`
	Scored  int        `json:"scored"`
	Skipped int        `json:"skipped"`
}

// ScoreBatch scores every row the source yields. Row failures (parse or
// schema) are recorded per row and never abort the batch. Scoring runs
// under the service's semaphore so a large sheet cannot monopolize the
// process.
func (s *PredictionService) ScoreBatch(ctx context.Context, source ports.BatchSourcePort) (BatchResult, error) {
	parsed, err := source.ReadReports(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	rows := make([]RowScore, 0, len(parsed))

	record := func(score RowScore) {
		mu.Lock()
		rows = append(rows, score)
		mu.Unlock()
	}

	for _, row := range parsed {
		if row.Err != nil {
			record(RowScore{Line: row.Line, Error: row.Err.Error(), ErrorCode: errors.CodeSchemaMismatch})
			continue
		}

		if err := s.batchSem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return BatchResult{}, err
		}

		wg.Add(1)
		go func(row ports.ParsedRow) {
			defer wg.Done()
			defer s.batchSem.Release(1)

			assessment, err := s.PredictRisk(row.Report)
			if err != nil {
				record(RowScore{Line: row.Line, Error: err.Error(), ErrorCode: errors.GetCode(err)})
				return
			}
			record(RowScore{Line: row.Line, Assessment: &assessment})
		}(row)
	}
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Line < rows[j].Line })

	result := BatchResult{Rows: rows}
	for _, row := range rows {
		if row.Assessment != nil {
			result.Scored++
		} else {
			result.Skipped++
		}
	}
	log.Printf("[PredictionService] Batch scored: %d ok, %d skipped", result.Scored, result.Skipped)
	return result, nil
}

// ModelInfo exposes the loaded artifact's description.
func (s *PredictionService) ModelInfo() ports.ModelInfo {
	return s.classifier.Info()
}

// Diagnostics returns ensemble structure diagnostics when the classifier
// supports them.
func (s *PredictionService) Diagnostics() (ports.EnsembleDiagnostics, bool) {
	diagnoser, ok := s.classifier.(ports.EnsembleDiagnoserPort)
	if !ok {
		return ports.EnsembleDiagnostics{}, false
	}
	diag, err := diagnoser.EnsembleDiagnostics()
	if err != nil {
		log.Printf("[PredictionService] Diagnostics unavailable: %v", err)
		return ports.EnsembleDiagnostics{}, false
	}
	return diag, true
}
