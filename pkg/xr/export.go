package xr

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunOutput is the JSON document written after a batch run. History is
// echoed exactly as parsed so a consumer can rebuild the run.
type RunOutput struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Predictions []*Prediction      `json:"predictions"`
	History     []*MatchRecord     `json:"history,omitempty"`
	Accuracy    *AggregateAccuracy `json:"accuracy,omitempty"`
}

// NewRunOutput bundles a prediction batch with its input history and
// the accuracy summary over whatever has been settled
func NewRunOutput(predictions []*Prediction, history []*MatchRecord, now time.Time) *RunOutput {
	return &RunOutput{
		GeneratedAt: now,
		Predictions: predictions,
		History:     history,
		Accuracy:    EvaluateAllPredictions(predictions),
	}
}

// WriteFile writes the output document as indented JSON
func (o *RunOutput) WriteFile(path string) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
