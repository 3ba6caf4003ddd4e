package models

// MoodProfile is produced by the upstream sentiment/NLP collaborator and
// consumed read-only. The engine reads Primary to select a mood bucket and
// Confidence as a multiplicative factor on mood-driven content scores.
// Energy, Intensity and Confidence are 0-100 scalars.
type MoodProfile struct {
	Primary    string   `json:"primary"`
	Energy     float64  `json:"energy"`
	Intensity  float64  `json:"intensity"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords,omitempty"`
}

// ConfidenceFactor returns the multiplier applied to mood-driven content
// scores. A zero confidence means the upstream classifier supplied no
// signal and is treated as full confidence rather than zeroing scores out.
func (m MoodProfile) ConfidenceFactor() float64 {
	if m.Confidence <= 0 {
		return 1.0
	}
	if m.Confidence > 100 {
		return 1.0
	}
	return m.Confidence / 100.0
}
