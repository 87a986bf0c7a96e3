package gems

// GemType identifies the category of achievement.
type GemType string

const (
	GemStreak  GemType = "streak"
	GemSession GemType = "session"
	GemLevel   GemType = "level"
)

var gemTypes = []struct {
	t          GemType
	name, icon string
}{
	{GemStreak, "Streak", "⚡"},
	{GemSession, "Session", "🏆"},
	{GemLevel, "Level", "💎"},
}

// AllGemTypes returns the gem types in display order.
func AllGemTypes() []GemType {
	out := make([]GemType, len(gemTypes))
	for i, g := range gemTypes {
		out[i] = g.t
	}
	return out
}

// DisplayName is the tab label, or the raw value for unknown types.
func (t GemType) DisplayName() string {
	for _, g := range gemTypes {
		if g.t == t {
			return g.name
		}
	}
	return string(t)
}

func (t GemType) Icon() string {
	for _, g := range gemTypes {
		if g.t == t {
			return g.icon
		}
	}
	return "✦"
}
