// Package format projects catalog records onto display fields.
package format

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/icco/animedash/models"
)

const (
	NotAvailable   = "N/A"
	NoSynopsis     = "No synopsis available."
	StatusFinished = "Finished Airing"
	StatusOngoing  = "Ongoing"
	DefaultQuality = "HD"
)

// Display is the flat, fully defaulted view of a record.
type Display struct {
	Position     int    `json:"position"`
	Name         string `json:"name"`
	EnglishName  string `json:"english_name"`
	JapaneseName string `json:"japanese_name"`
	Synopsis     string `json:"synopsis"`
	Type         string `json:"type"`
	Studios      string `json:"studios"`
	Aired        string `json:"aired"`
	Status       string `json:"status"`
	Genres       string `json:"genres"`
	Score        string `json:"score"`
	Premiered    string `json:"premiered"`
	Duration     string `json:"duration"`
	Quality      string `json:"quality"`
	Views        string `json:"views"`
}

// Record formats a single record. It never fails: every missing field
// resolves to its default.
func Record(a models.Anime) Display {
	var completed float64
	if a.Completed != nil {
		completed = *a.Completed
	}
	status := StatusOngoing
	if completed > 0 {
		status = StatusFinished
	}

	var members int64
	if a.Members != nil {
		members = *a.Members
	}

	score := NotAvailable
	if a.Score != nil {
		score = Score(*a.Score)
	}

	return Display{
		Position:     a.Position,
		Name:         a.Name,
		EnglishName:  or(a.EnglishName, ""),
		JapaneseName: or(a.JapaneseName, ""),
		Synopsis:     or(a.Synopsis, NoSynopsis),
		Type:         or(a.Type, NotAvailable),
		Studios:      or(a.Studios, NotAvailable),
		Aired:        or(a.Aired, NotAvailable),
		Status:       status,
		Genres:       or(a.Genres, NotAvailable),
		Score:        score,
		Premiered:    or(a.Premiered, NotAvailable),
		Duration:     or(a.Duration, NotAvailable),
		Quality:      DefaultQuality,
		Views:        humanize.Comma(members),
	}
}

// Records formats every record in rs.
func Records(rs []models.Anime) []Display {
	out := make([]Display, 0, len(rs))
	for _, a := range rs {
		out = append(out, Record(a))
	}
	return out
}

// Score renders a score with at least one decimal place, e.g. 7 -> "7.0".
func Score(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// AltNames joins the English and Japanese names for the subtitle line,
// skipping whichever is empty.
func (d Display) AltNames() string {
	var parts []string
	for _, s := range []string{d.EnglishName, d.JapaneseName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func or(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
