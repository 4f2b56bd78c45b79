// Package report owns the citizen report lifecycle: submission runs the
// validation decision engine and stores the record, and status queries may
// advance a validating record to its terminal state and grant a reward. The
// package exclusively mutates stored reports; other components only read the
// results it returns.
package report

import (
	"errors"
	"time"
)

// ErrReportNotFound reports an unknown report identifier.
var ErrReportNotFound = errors.New("report not found")

// Status is the validation state of a report. Verified and rejected are
// terminal; validating advances exactly once on a later status query;
// needs-review has no automatic transition out of it.
type Status string

const (
	StatusValidating  Status = "validating"
	StatusVerified    Status = "verified"
	StatusNeedsReview Status = "needs-review"
	StatusRejected    Status = "rejected"
)

// Detection is the scoring provider output attached to a submission. It may
// be absent; a missing detection is treated as zero confidence.
type Detection struct {
	Category   string             `json:"detectedCategory"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
	Objects    []string           `json:"detectedObjects,omitempty"`
}

// Report is a stored citizen report record.
type Report struct {
	ID           string     `json:"reportId"`
	Category     string     `json:"category"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LocationName string     `json:"locationName"`
	Detection    *Detection `json:"detection,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Status       Status     `json:"validationStatus"`
	Reason       string     `json:"validationReason"`
	Confidence   float64    `json:"confidenceScore"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	Reward       int        `json:"rewardCoins"`
}

// SubmitInput is the well-formed payload of a report submission.
type SubmitInput struct {
	Category     string
	Latitude     float64
	Longitude    float64
	LocationName string
	Detection    *Detection
}

// SubmitResult is returned to the caller for status tracking.
type SubmitResult struct {
	ReportID         string `json:"reportId"`
	Status           string `json:"status"`
	ValidationStatus Status `json:"validationStatus"`
	EstimatedSeconds int    `json:"estimatedVerificationTime"`
	Message          string `json:"message"`
}

// StatusResult is the current state of a tracked report.
type StatusResult struct {
	ReportID    string     `json:"reportId"`
	Status      Status     `json:"status"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	SubmittedAt time.Time  `json:"submittedAt"`
	VerifiedAt  *time.Time `json:"verifiedAt"`
	Confidence  float64    `json:"confidenceScore"`
	Reason      string     `json:"validationReason"`
	Reward      int        `json:"rewardCoins"`
	Message     string     `json:"message"`
}

// Stats aggregates the stored reports.
type Stats struct {
	Total            int            `json:"total"`
	Verified         int            `json:"verified"`
	Pending          int            `json:"pending"`
	Rejected         int            `json:"rejected"`
	VerificationRate float64        `json:"verificationRate"`
	Categories       map[string]int `json:"categories,omitempty"`
}

func statusMessage(s Status) string {
	switch s {
	case StatusValidating:
		return "AI validation in progress. This usually takes a few seconds."
	case StatusVerified:
		return "Report verified! Your contribution helps monitor environmental conditions."
	case StatusNeedsReview:
		return "Report queued for expert review. This may take a few minutes."
	case StatusRejected:
		return "Unable to verify this report. Consider resubmitting with clearer evidence."
	default:
		return "Processing your report..."
	}
}
