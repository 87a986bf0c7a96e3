package diagnosis

// Classifier is a rule-based error classifier. It returns nil when the
// rule does not apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) *Diagnosis
}

// DefaultClassifiers returns classifiers in priority order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&SpeedRushClassifier{},
		&AlternateValencyClassifier{},
		&ConfusionClassifier{},
		&CarelessClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order and returns
// the first match, or nil if no rule applies.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) *Diagnosis {
	for _, c := range classifiers {
		if d := c.Classify(input); d != nil {
			d.ClassifierName = c.Name()
			return d
		}
	}
	return nil
}

// Diagnose classifies a wrong answer with the default classifiers.
func Diagnose(input *ClassifyInput) Diagnosis {
	if d := RunClassifiers(DefaultClassifiers(), input); d != nil {
		return *d
	}
	return Diagnosis{Category: CategoryUnclassified, ClassifierName: "none"}
}
