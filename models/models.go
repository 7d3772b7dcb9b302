package models

// Anime is one row of the catalog. Every field except Name is optional; a nil
// pointer means the cell was empty or could not be parsed.
type Anime struct {
	Position     int      `json:"position" gorm:"primaryKey;autoIncrement:false"`
	Name         string   `json:"name" gorm:"index"`
	EnglishName  *string  `json:"english_name,omitempty"`
	JapaneseName *string  `json:"japanese_name,omitempty"`
	Synopsis     *string  `json:"synopsis,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Studios      *string  `json:"studios,omitempty"`
	Aired        *string  `json:"aired,omitempty"`
	Completed    *float64 `json:"completed,omitempty"`
	Genres       *string  `json:"genres,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Premiered    *string  `json:"premiered,omitempty"`
	Duration     *string  `json:"duration,omitempty"`
	Members      *int64   `json:"members,omitempty"`
}

// TableName keeps the mirrored table name stable regardless of gorm's pluralizer.
func (Anime) TableName() string {
	return "anime"
}

// Field names a multi-valued, comma-delimited column.
type Field string

const (
	FieldGenres  Field = "genres"
	FieldStudios Field = "studios"
)

// Values returns the raw delimited value of the field, or nil when the record
// has none.
func (a Anime) Values(f Field) *string {
	switch f {
	case FieldGenres:
		return a.Genres
	case FieldStudios:
		return a.Studios
	}
	return nil
}

// ParseField maps a user-supplied name onto a Field.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldGenres, FieldStudios:
		return Field(s), true
	}
	return "", false
}

// LabelCount is a single (label, count) pair produced by an aggregation.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Bin is one histogram bucket. Low is inclusive; High is exclusive except for
// the last bucket.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}
