// Package validation checks project descriptions for the topic coverage
// required before an assessment may be scored.
package validation

// RequiredAreas is the fixed number of topic areas a complete project
// description addresses.
const RequiredAreas = 6

// Fixed acceptance thresholds. A description passes when it covers at
// least MinAreasCovered areas and contains at least MinWordCount words.
const (
	MinAreasCovered = 4
	MinWordCount    = 50
)

// TopicArea is one of the fixed subject areas a project description must
// address, with the phrases that signal its coverage.
type TopicArea struct {
	Name     string
	Keywords []string
}

// topicAreas is the fixed catalogue consulted by Validate. Matching is
// case-insensitive substring matching over the combined name and
// description text.
var topicAreas = []TopicArea{
	{
		Name: "business purpose",
		Keywords: []string{
			"purpose", "business value", "objective", "goal",
			"problem", "mandate", "intended use",
		},
	},
	{
		Name: "data sources",
		Keywords: []string{
			"data source", "dataset", "data set", "training data",
			"personal information", "data collection", "input data",
		},
	},
	{
		Name: "affected populations",
		Keywords: []string{
			"affected", "population", "individuals", "clients",
			"applicants", "communities", "users impacted", "vulnerable",
		},
	},
	{
		Name: "decision-making process",
		Keywords: []string{
			"decision", "recommendation", "determin", "adjudicat",
			"approval", "denial", "human in the loop", "human review",
		},
	},
	{
		Name: "technical architecture",
		Keywords: []string{
			"architecture", "model", "algorithm", "machine learning",
			"neural network", "system design", "infrastructure", "api",
		},
	},
	{
		Name: "oversight and governance",
		Keywords: []string{
			"oversight", "governance", "audit", "accountab",
			"monitoring", "review board", "compliance", "recourse",
		},
	},
}

// AreaNames returns the fixed topic area names in catalogue order.
func AreaNames() []string {
	names := make([]string, len(topicAreas))
	for i, area := range topicAreas {
		names[i] = area.Name
	}
	return names
}
