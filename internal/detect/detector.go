// Package detect provides the image scoring stub consumed by the report
// pipeline. It decodes the uploaded image to prove the bytes are a real
// picture, then fabricates a calibrated-looking category distribution; no
// model runs here. The random source is injectable for tests.
package detect

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
)

// ErrBadImage reports that the uploaded bytes could not be decoded.
var ErrBadImage = errors.New("image decode failed")

// Rand is the subset of *math/rand/v2.Rand the detector draws from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Result is a detection outcome: the winning category, its confidence, the
// full per-category score distribution (sums to 1.0), the objects found, and
// a human-readable explanation.
type Result struct {
	Category    string             `json:"detectedCategory"`
	Confidence  float64            `json:"confidence"`
	Scores      map[string]float64 `json:"scores"`
	Objects     []string           `json:"detectedObjects"`
	Explanation string             `json:"explanation"`
}

// ModelInfo describes the (simulated) model behind the detector.
type ModelInfo struct {
	Model       string   `json:"model"`
	Categories  []string `json:"categories"`
	Note        string   `json:"note"`
	Accuracy    string   `json:"accuracy"`
	Limitations []string `json:"limitations"`
}

// scoreRange bounds the raw score drawn for a category before normalization.
type scoreRange struct{ lo, hi float64 }

var categoryRanges = map[string]scoreRange{
	"air":          {0.15, 0.45},
	"garbage":      {0.10, 0.35},
	"construction": {0.15, 0.40},
	"water":        {0.05, 0.25},
}

var objectPools = map[string][]string{
	"air":          {"vehicle", "truck", "car", "motorcycle", "smoke", "traffic"},
	"garbage":      {"plastic_bag", "bottle", "trash_pile", "waste_container", "litter"},
	"construction": {"construction_equipment", "dust_cloud", "building", "crane", "excavation"},
	"water":        {"water_body", "sewage", "drain", "algae_growth", "contamination"},
}

// Detector synthesizes detection results. Safe for concurrent use.
type Detector struct {
	mu  sync.Mutex
	rng Rand
}

type Option func(*Detector)

// WithRand replaces the score source.
func WithRand(r Rand) Option {
	return func(d *Detector) { d.rng = r }
}

func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze decodes the image and returns a synthetic detection result.
func (d *Detector) Analyze(imageData []byte) (Result, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(imageData)); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	scores := d.drawScores()

	category, confidence := "", 0.0
	for cat, score := range scores {
		if score > confidence || (score == confidence && cat < category) {
			category, confidence = cat, score
		}
	}

	objects := d.pickObjects(category, confidence)

	return Result{
		Category:    category,
		Confidence:  confidence,
		Scores:      scores,
		Objects:     objects,
		Explanation: explain(category, confidence, objects),
	}, nil
}

// Info returns the model card for the detector.
func (d *Detector) Info() ModelInfo {
	categories := make([]string, 0, len(categoryRanges))
	for cat := range categoryRanges {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	return ModelInfo{
		Model:      "YOLOv8-Environmental (Simulated)",
		Categories: categories,
		Note:       "AI-assisted preliminary classification. Not a replacement for official sensors or measurements.",
		Accuracy:   "Trained on 10K+ environmental images (simulated)",
		Limitations: []string{
			"Cannot measure actual pollution levels",
			"Visual detection only",
			"Requires human verification for official reporting",
			"Weather and lighting conditions affect accuracy",
		},
	}
}

// drawScores samples each category's range and normalizes so the
// distribution sums to 1.0.
func (d *Detector) drawScores() map[string]float64 {
	d.mu.Lock()
	raw := make(map[string]float64, len(categoryRanges))
	total := 0.0
	for cat, r := range categoryRanges {
		v := r.lo + d.rng.Float64()*(r.hi-r.lo)
		raw[cat] = v
		total += v
	}
	d.mu.Unlock()

	scores := make(map[string]float64, len(raw))
	for cat, v := range raw {
		scores[cat] = v / total
	}
	return scores
}

// pickObjects samples the category's object pool; more confident detections
// report more objects.
func (d *Detector) pickObjects(category string, confidence float64) []string {
	pool := objectPools[category]

	n := 2
	switch {
	case confidence >= 0.7:
		n = 4
	case confidence >= 0.5:
		n = 3
	}
	if n > len(pool) {
		n = len(pool)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	picked := make([]string, len(pool))
	copy(picked, pool)
	for i := 0; i < n; i++ {
		j := i + d.rng.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}

func explain(category string, confidence float64, objects []string) string {
	confDesc := "Low confidence"
	switch {
	case confidence >= 0.75:
		confDesc = "High confidence"
	case confidence >= 0.50:
		confDesc = "Moderate confidence"
	}

	found := strings.Join(objects, ", ")

	var text string
	switch category {
	case "air":
		text = fmt.Sprintf("%s detection of air pollution indicators. Detected: %s. "+
			"This suggests vehicular or industrial emissions. AI recommendation: verify with citizen observation.", confDesc, found)
	case "garbage":
		text = fmt.Sprintf("%s detection of waste accumulation. Identified: %s. "+
			"Visible garbage and litter patterns detected. Recommendation: cross-reference with location history.", confDesc, found)
	case "construction":
		text = fmt.Sprintf("%s detection of construction-related pollution. Found: %s. "+
			"Construction activity and dust generation indicators present. Consider time of day and weather context.", confDesc, found)
	case "water":
		text = fmt.Sprintf("%s detection of water pollution indicators. Detected: %s. "+
			"Water quality concerns visible. Requires field verification for contamination assessment.", confDesc, found)
	default:
		text = "Detection analysis completed."
	}

	if confidence < 0.6 {
		text += " Lower confidence suggests ambiguous visual conditions or mixed environmental factors."
	}
	return text
}
