// Package analytics derives display data from stored ladders: rating levels, tag and
// rating aggregates, ladder numbering and per-user progress.
package analytics

// Level is one Codeforces rating band. Min and Max are inclusive.
type Level struct {
	Level int
	Name  string
	Min   int
	Max   int
}

// Contains reports whether rating falls inside the band.
func (l Level) Contains(rating int) bool {
	return rating >= l.Min && rating <= l.Max
}

var levels = []Level{
	{Level: 1, Name: "Newbie", Min: 0, Max: 1199},
	{Level: 2, Name: "Pupil", Min: 1200, Max: 1399},
	{Level: 3, Name: "Specialist", Min: 1400, Max: 1599},
	{Level: 4, Name: "Expert", Min: 1600, Max: 1899},
	{Level: 5, Name: "Candidate Master", Min: 1900, Max: 2099},
	{Level: 6, Name: "Master", Min: 2100, Max: 2299},
	{Level: 7, Name: "International Master", Min: 2300, Max: 2399},
	{Level: 8, Name: "Grandmaster", Min: 2400, Max: 2599},
	{Level: 9, Name: "International Grandmaster", Min: 2600, Max: 2999},
	{Level: 10, Name: "Legendary Grandmaster", Min: 3000, Max: 4999},
}

// Levels returns the rating bands in ascending order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// LevelByNumber returns band n, or the first band when n is out of range.
func LevelByNumber(n int) Level {
	if n < 1 || n > len(levels) {
		return levels[0]
	}
	return levels[n-1]
}

// LevelForRating returns the first band containing rating, or the first band.
func LevelForRating(rating int) Level {
	for _, l := range levels {
		if l.Contains(rating) {
			return l
		}
	}
	return levels[0]
}
