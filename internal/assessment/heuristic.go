package assessment

import "strings"

// riskSignal is one text pattern consulted by the preview estimator. The
// weights are calibrated against the questionnaire's own choice weights so
// a description rich in high-risk signals lands in a comparable band.
type riskSignal struct {
	Name     string
	Keywords []string
	Weight   int
}

// riskSignals is the fixed signal table. Order is significant only for the
// reported match list; the estimate is a sum and therefore order-free.
var riskSignals = []riskSignal{
	{Name: "fully automated decisions", Keywords: []string{"fully automated", "no human involvement", "without human review", "automated decision"}, Weight: 12},
	{Name: "personal data processing", Keywords: []string{"personal data", "personal information", "health record", "financial record"}, Weight: 8},
	{Name: "biometric or behavioural data", Keywords: []string{"biometric", "facial recognition", "behavioural data", "behavioral data"}, Weight: 12},
	{Name: "vulnerable populations", Keywords: []string{"vulnerable", "children", "minors", "disabilit", "low-income", "marginalized"}, Weight: 10},
	{Name: "irreversible outcomes", Keywords: []string{"irreversible", "cannot be reversed", "permanent"}, Weight: 10},
	{Name: "benefit or entitlement decisions", Keywords: []string{"benefit", "entitlement", "eligibility", "welfare"}, Weight: 8},
	{Name: "law enforcement or security use", Keywords: []string{"law enforcement", "policing", "surveillance", "national security"}, Weight: 14},
	{Name: "machine learning model", Keywords: []string{"machine learning", "neural network", "deep learning", "large language model"}, Weight: 6},
	{Name: "third-party data sharing", Keywords: []string{"data broker", "third-party data", "data sharing", "purchased data"}, Weight: 6},
	{Name: "economic impact on individuals", Keywords: []string{"loan", "credit", "employment decision", "hiring", "housing"}, Weight: 10},
}

// EstimateScore derives an estimated impact score from free text using the
// fixed signal table. It is deterministic: the same text always yields the
// same score and the same matched-signal list.
func EstimateScore(projectName, projectDescription string) (score int, matched []string) {
	text := strings.ToLower(projectName + " " + projectDescription)

	for _, signal := range riskSignals {
		for _, keyword := range signal.Keywords {
			if strings.Contains(text, keyword) {
				score += signal.Weight
				matched = append(matched, signal.Name)
				break
			}
		}
	}

	return score, matched
}
