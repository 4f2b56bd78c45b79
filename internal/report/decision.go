package report

import "math"

// Confidence thresholds for the validation decision bands.
const (
	thresholdHigh   = 0.75
	thresholdMedium = 0.50
)

// Decision is the initial validation outcome for a submission.
type Decision struct {
	Status     Status
	Reason     string
	Confidence float64
}

// HotspotIndex reports whether a location is a known pollution concern area.
// The default implementation is probabilistic; a real geospatial table can be
// swapped in without touching the decision logic.
type HotspotIndex interface {
	IsHotspot(lat, lng float64) bool
}

// randomHotspots matches roughly three locations in ten, standing in for a
// geospatial lookup.
type randomHotspots struct {
	rng func() float64
}

func (h randomHotspots) IsHotspot(_, _ float64) bool {
	return h.rng() < 0.3
}

// decide maps a scoring confidence and location to an initial
// validation status and reason.
//
// High confidence takes the verified path 70% of the time; that path starts
// at validating and is confirmed on a later status query. Medium confidence
// always queues for review. Low confidence queues for review 60% of the time
// and rejects otherwise. A hotspot match adds 0.1 confidence (capped at 1.0)
// and extends the reason.
func (p *Processor) decide(confidence float64, lat, lng float64) Decision {
	var status Status
	var reason string

	switch {
	case confidence >= thresholdHigh:
		if p.roll() < 0.7 {
			// Verified path: deferred confirmation.
			status = StatusValidating
		} else {
			status = StatusNeedsReview
		}
		reason = "High AI confidence. Visual indicators strongly match reported category."

	case confidence >= thresholdMedium:
		status = StatusNeedsReview
		reason = "Moderate AI confidence. Requires additional verification for accuracy."

	default:
		if p.roll() < 0.6 {
			status = StatusNeedsReview
		} else {
			status = StatusRejected
		}
		reason = "Low AI confidence. Visual conditions unclear or ambiguous."
	}

	if p.hotspots.IsHotspot(lat, lng) {
		reason += " Location matches known environmental concern area."
		confidence = math.Min(1.0, confidence+0.1)
	}

	return Decision{
		Status:     status,
		Reason:     reason,
		Confidence: math.Round(confidence*100) / 100,
	}
}
