package entitlement

import "github.com/clinicore/clinicore/pkg/plan"

// UsageLevel classifies utilization for alert rendering.
type UsageLevel string

const (
	// LevelOK: below the warning threshold, render nothing.
	LevelOK UsageLevel = "ok"
	// LevelWarning: at or above 80% utilization.
	LevelWarning UsageLevel = "warning"
	// LevelReached: at or above the configured maximum.
	LevelReached UsageLevel = "reached"
)

// WarningThreshold is the utilization ratio above which a warning is shown.
// Fixed design constant, not configuration.
const WarningThreshold = 0.80

// LevelFor classifies current usage against a maximum. An unlimited maximum
// is always LevelOK. A zero maximum is already reached.
func LevelFor(current, max int64) UsageLevel {
	if max == plan.Unlimited {
		return LevelOK
	}
	if max == 0 || current >= max {
		return LevelReached
	}
	if float64(current) >= float64(max)*WarningThreshold {
		return LevelWarning
	}
	return LevelOK
}

// Level classifies the usage info for alert rendering.
func (u UsageInfo) Level() UsageLevel {
	return LevelFor(u.Current, u.Max)
}
