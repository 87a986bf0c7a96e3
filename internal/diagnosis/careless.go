package diagnosis

// CarelessAccuracyThreshold is the minimum level accuracy (exclusive)
// for a wrong answer to be classified as a careless error.
const CarelessAccuracyThreshold = 0.80

// CarelessMinAttempts is how many answers at the level are needed before
// the accuracy means anything.
const CarelessMinAttempts = 5

// CarelessClassifier flags wrong answers from high-accuracy learners as
// careless slips rather than knowledge gaps.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(input *ClassifyInput) *Diagnosis {
	if input.LevelAttempts < CarelessMinAttempts || input.LevelAccuracy <= CarelessAccuracyThreshold {
		return nil
	}
	return &Diagnosis{
		Category:   CategoryCareless,
		Confidence: 0.8,
		Detail:     "You usually get these right. Probably just a slip.",
	}
}
