package types

// StatsData represents statistics about the anime catalog.
type StatsData struct {
	TotalAnime       int64       `json:"total_anime"`
	ScoredAnime      int64       `json:"scored_anime"`
	AverageScore     float64     `json:"average_score"`
	MinScore         float64     `json:"min_score"`
	MaxScore         float64     `json:"max_score"`
	FinishedAiring   int64       `json:"finished_airing"`
	Ongoing          int64       `json:"ongoing"`
	TotalMembers     int64       `json:"total_members"`
	TypeDistribution []TypeCount `json:"type_distribution"`
}

// TypeCount is the number of catalog entries of a given Type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}
