package core

// Level represents the severity level of a log entry.
// Values match the conventional numeric ranks so they sort and compare naturally.
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarningLevel for unexpected minor problems
	WarningLevel Level = 30
	// ErrorLevel for problems that stopped some work from finishing
	ErrorLevel Level = 40
	// CriticalLevel for near-fatal or fatal problems
	CriticalLevel Level = 50
)

// Levels lists every defined level in ascending order.
var Levels = [...]Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}

// Tier groups levels into the informational and alert bands.
type Tier uint8

const (
	// InfoTier holds levels below WarningLevel
	InfoTier Tier = iota
	// AlertTier holds WarningLevel and above
	AlertTier
)

// String returns the string representation of the tier
func (t Tier) String() string {
	if t == AlertTier {
		return "alert"
	}
	return "info"
}

type levelInfo struct {
	name string
	tag  string
}

// levelTable is indexed by rank/10.
var levelTable = [...]levelInfo{
	1: {name: "DEBUG", tag: "⚪"},
	2: {name: "INFO", tag: "⬛"},
	3: {name: "WARNING", tag: "🟧"},
	4: {name: "ERROR", tag: "🟥"},
	5: {name: "CRITICAL", tag: "🟥🟥"},
}

func (l Level) info() (levelInfo, bool) {
	if l <= 0 || l%10 != 0 || int(l/10) >= len(levelTable) {
		return levelInfo{}, false
	}
	return levelTable[l/10], true
}

// String returns the string representation of the level
func (l Level) String() string {
	if li, ok := l.info(); ok {
		return li.name
	}
	return "UNKNOWN"
}

// Tag returns the display glyph for the level, or "" for an unknown level.
func (l Level) Tag() string {
	li, _ := l.info()
	return li.tag
}

// Tier returns the band the level belongs to.
func (l Level) Tier() Tier {
	if l >= WarningLevel {
		return AlertTier
	}
	return InfoTier
}

// IsAlert reports whether l is WarningLevel or above.
func (l Level) IsAlert() bool {
	return l.Tier() == AlertTier
}

// Index returns the position of l in Levels, or -1 when l is not a defined level.
func (l Level) Index() int {
	if _, ok := l.info(); !ok {
		return -1
	}
	return int(l/10) - 1
}
