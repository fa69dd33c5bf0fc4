// Package feedback records how accurate users found their readings. The
// trail feeds rule tuning, so the model keeps the prediction text alongside
// the verdict.
package feedback

import (
	"fmt"
	"time"
)

// Accuracy is the user's verdict on one prediction.
type Accuracy string

const (
	AccuracyAccurate   Accuracy = "accurate"
	AccuracyPartial    Accuracy = "partial"
	AccuracyInaccurate Accuracy = "inaccurate"
)

func (a Accuracy) Valid() bool {
	switch a {
	case AccuracyAccurate, AccuracyPartial, AccuracyInaccurate:
		return true
	}
	return false
}

// Entry is one submitted feedback record.
type Entry struct {
	ID      string `json:"id"`
	ChartID string `json:"chart_id,omitempty"`

	Category   string   `json:"category"`
	Prediction string   `json:"prediction"`
	Rating     int      `json:"rating"`
	Accuracy   Accuracy `json:"accuracy"`
	Actual     string   `json:"actual"`

	CorrectParts   string `json:"correct_parts,omitempty"`
	IncorrectParts string `json:"incorrect_parts,omitempty"`
	MissingParts   string `json:"missing_parts,omitempty"`

	ClientIP  string    `json:"client_ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const maxTextLen = 4000

// Validate applies the submission-boundary checks.
func (e Entry) Validate() error {
	switch {
	case e.Category == "":
		return fmt.Errorf("category is required")
	case e.Prediction == "":
		return fmt.Errorf("prediction is required")
	case e.Rating < 1 || e.Rating > 5:
		return fmt.Errorf("rating must be between 1 and 5, got %d", e.Rating)
	case !e.Accuracy.Valid():
		return fmt.Errorf("accuracy must be %s, %s, or %s", AccuracyAccurate, AccuracyPartial, AccuracyInaccurate)
	case e.Actual == "":
		return fmt.Errorf("actual situation is required")
	case len(e.Prediction) > maxTextLen || len(e.Actual) > maxTextLen:
		return fmt.Errorf("text fields must not exceed %d bytes", maxTextLen)
	}
	return nil
}

// Stats summarizes the trail for the admin view.
type Stats struct {
	Total      int     `json:"total"`
	Accurate   int     `json:"accurate"`
	Partial    int     `json:"partial"`
	Inaccurate int     `json:"inaccurate"`
	MeanRating float64 `json:"mean_rating"`
}
