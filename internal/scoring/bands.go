package scoring

import "github.com/openimpact/aia-engine/internal/types"

// band is one row of the fixed impact-level threshold table. Bands are
// closed-inclusive on the lower bound and must not overlap.
type band struct {
	min   int
	max   int // inclusive; -1 means unbounded
	level types.ImpactLevel
}

// impactBands maps absolute total scores to impact levels. The table is
// fixed and independent of the survey's maximum possible score.
var impactBands = []band{
	{min: 0, max: 30, level: types.ImpactLevelI},
	{min: 31, max: 55, level: types.ImpactLevelII},
	{min: 56, max: 75, level: types.ImpactLevelIII},
	{min: 76, max: -1, level: types.ImpactLevelIV},
}

// ImpactLevelForScore maps a total score to its impact level. The mapping
// is total over non-negative integers: every score lands in exactly one
// band.
func ImpactLevelForScore(totalScore int) types.ImpactLevel {
	for _, b := range impactBands {
		if totalScore >= b.min && (b.max < 0 || totalScore <= b.max) {
			return b.level
		}
	}
	// Unreachable for non-negative scores; the first band starts at 0.
	return types.ImpactLevelI
}

// LevelDescription returns human-readable wording for an impact level,
// used in exported reports.
func LevelDescription(level types.ImpactLevel) string {
	switch level {
	case types.ImpactLevelI:
		return "Little to no impact: minimal oversight requirements apply"
	case types.ImpactLevelII:
		return "Moderate impact: decisions require documented human review points"
	case types.ImpactLevelIII:
		return "High impact: qualified oversight and published recourse process required"
	case types.ImpactLevelIV:
		return "Very high impact: the highest level of oversight and approval applies"
	default:
		return "Unknown impact level"
	}
}
