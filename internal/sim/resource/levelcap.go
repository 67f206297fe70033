package resource

const (
	MinLevel = 0
	MaxLevel = 100
)

// LevelCap is implemented by anything that holds levels in [MinLevel, MaxLevel].
// Nothing is enforced between a mutation and the next adjustment.
type LevelCap interface {
	AdjustMinLevel()
	AdjustMaxLevel()
}

// Cap applies both adjustments.
func Cap(c LevelCap) {
	c.AdjustMaxLevel()
	c.AdjustMinLevel()
}

// Clamp returns v limited to [MinLevel, MaxLevel].
func Clamp(v int) int {
	return max(min(v, MaxLevel), MinLevel)
}

func (r *Resource) AdjustMaxLevel() {
	r.Amount = min(r.Amount, MaxLevel)
}

func (r *Resource) AdjustMinLevel() {
	r.Amount = max(r.Amount, MinLevel)
}
