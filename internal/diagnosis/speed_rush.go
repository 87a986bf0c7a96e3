package diagnosis

import "time"

// SpeedRushThreshold is the maximum response time (exclusive) for a
// wrong answer to be classified as a speed-rush.
const SpeedRushThreshold = 2 * time.Second

// SpeedRushClassifier flags answers submitted too quickly as speed-rush errors.
type SpeedRushClassifier struct{}

func (c *SpeedRushClassifier) Name() string { return "speed-rush" }

func (c *SpeedRushClassifier) Classify(input *ClassifyInput) *Diagnosis {
	if input.ResponseTime >= SpeedRushThreshold {
		return nil
	}
	return &Diagnosis{
		Category:   CategorySpeedRush,
		Confidence: 0.9,
		Detail:     "That was quick. Read every option before answering.",
	}
}
