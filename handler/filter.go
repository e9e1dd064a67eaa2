package handler

import "github.com/Philipp01105/logz/core"

// Filter decides whether a sink accepts a level. Filters are pure
// functions of the level and carry no state.
type Filter func(level core.Level) bool

// InfoTier accepts levels below WarningLevel.
func InfoTier(level core.Level) bool {
	return level < core.WarningLevel
}

// AlertTier accepts WarningLevel and above. The bound is checked here
// rather than trusted to the logger's minimum level.
func AlertTier(level core.Level) bool {
	return level >= core.WarningLevel
}

// AllLevels accepts every level.
func AllLevels(core.Level) bool {
	return true
}

// Between accepts levels in [min, max].
func Between(min, max core.Level) Filter {
	return func(level core.Level) bool {
		return level >= min && level <= max
	}
}

// AtLeast accepts levels at or above min.
func AtLeast(min core.Level) Filter {
	return func(level core.Level) bool {
		return level >= min
	}
}

// TierFilter returns the filter for a tier.
func TierFilter(t core.Tier) Filter {
	if t == core.AlertTier {
		return AlertTier
	}
	return InfoTier
}
