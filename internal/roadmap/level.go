package roadmap

// levelBand maps a minimum completed-task count to a level title.
type levelBand struct {
	minCompleted int
	title        string
}

// Bands are ordered by threshold; the highest band at or below the completed
// count wins.
var levelBands = []levelBand{
	{0, "Newcomer"},
	{2, "Beginner Explorer"},
	{4, "Motivated Starter"},
	{6, "Skill Builder"},
	{8, "Aspiring Achiever"},
	{10, "Career Trailblazer"},
	{12, "Growth Champion"},
	{14, "Master Navigator"},
	{16, "Visionary"},
	{18, "Legend"},
}

// Level returns the 1-based level index for a completed-task count.
func Level(completed int) int {
	level := 1
	for i, band := range levelBands {
		if completed >= band.minCompleted {
			level = i + 1
		}
	}
	return level
}

// LevelTitle returns the title of the band the completed-task count falls in.
func LevelTitle(completed int) string {
	return levelBands[Level(completed)-1].title
}
