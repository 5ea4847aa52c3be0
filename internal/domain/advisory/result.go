package advisory

// Result bundles everything derived from one weather fact and purpose.
type Result struct {
	Visual          Visual         `json:"visual"`
	PurposeLabel    string         `json:"purposeLabel"`
	Recommendations Recommendation `json:"recommendations"`
	Ad              Advertisement  `json:"ad"`
}

// Evaluate runs the classifier, advisory engine and ad selector together.
func Evaluate(code int, isDay bool, purpose Purpose, tempMin, tempMax float64) Result {
	visual := Classify(code, isDay)
	return Result{
		Visual:          visual,
		PurposeLabel:    purpose.Label(),
		Recommendations: Advise(visual.Bucket, purpose, tempMin, tempMax),
		Ad:              SelectAd(visual.Bucket),
	}
}
