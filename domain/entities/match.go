package entities

// MatchResult is the transient outcome of a single template search.
// Either the center of the best matching region, or absent.
type MatchResult struct {
	Found bool    `json:"found"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}
