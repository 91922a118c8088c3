package platformer

// LevelSource supplies immutable level templates by index.
type LevelSource interface {
	Level(index int) *Level
	Count() int
}

// Roster is a campaign of levels generated ahead of time.
type Roster struct {
	levels []Level
}

// NewRoster generates n levels with gen. n is at least 1.
func NewRoster(gen *Generator, n int) *Roster {
	n = max(n, 1)
	r := &Roster{levels: make([]Level, n)}
	for i := range r.levels {
		r.levels[i] = gen.Generate(i)
	}
	return r
}

// Level returns the template at index, wrapping out-of-range indexes.
func (r *Roster) Level(index int) *Level {
	return Levels(r.levels).Level(index)
}

// Count returns the number of levels.
func (r *Roster) Count() int {
	return len(r.levels)
}

// Levels is a fixed list of templates; handy for hand-built stages.
type Levels []Level

// Level returns the template at index, wrapping out-of-range indexes.
func (l Levels) Level(index int) *Level {
	if len(l) == 0 {
		return &Level{}
	}
	index %= len(l)
	if index < 0 {
		index += len(l)
	}
	return &l[index]
}

// Count returns the number of levels.
func (l Levels) Count() int {
	return len(l)
}
