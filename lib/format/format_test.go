package format

import (
	"testing"

	"github.com/icco/animedash/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestRecord(t *testing.T) {
	t.Run("every field absent resolves to defaults", func(t *testing.T) {
		d := Record(models.Anime{})

		assert.Equal(t, Display{
			Name:         "",
			EnglishName:  "",
			JapaneseName: "",
			Synopsis:     "No synopsis available.",
			Type:         "N/A",
			Studios:      "N/A",
			Aired:        "N/A",
			Status:       "Ongoing",
			Genres:       "N/A",
			Score:        "N/A",
			Premiered:    "N/A",
			Duration:     "N/A",
			Quality:      "HD",
			Views:        "0",
		}, d)
	})

	t.Run("present fields pass through", func(t *testing.T) {
		d := Record(models.Anime{
			Position:     42,
			Name:         "Cowboy Bebop",
			EnglishName:  ptr("Cowboy Bebop"),
			JapaneseName: ptr("カウボーイビバップ"),
			Synopsis:     ptr("Space bounty hunters."),
			Type:         ptr("TV"),
			Studios:      ptr("Sunrise"),
			Aired:        ptr("Apr 3, 1998 to Apr 24, 1999"),
			Completed:    ptr(1.0),
			Genres:       ptr("Action, Sci-Fi"),
			Score:        ptr(8.78),
			Premiered:    ptr("Spring 1998"),
			Duration:     ptr("24 min. per ep."),
			Members:      ptr(int64(1251960)),
		})

		assert.Equal(t, 42, d.Position)
		assert.Equal(t, "Space bounty hunters.", d.Synopsis)
		assert.Equal(t, "Finished Airing", d.Status)
		assert.Equal(t, "8.78", d.Score)
		assert.Equal(t, "Sunrise", d.Studios)
		assert.Equal(t, "HD", d.Quality)
		assert.Equal(t, "1,251,960", d.Views)
		assert.Equal(t, "Cowboy Bebop, カウボーイビバップ", d.AltNames())
	})

	t.Run("zero completed is ongoing", func(t *testing.T) {
		assert.Equal(t, StatusOngoing, Record(models.Anime{Completed: ptr(0.0)}).Status)
		assert.Equal(t, StatusFinished, Record(models.Anime{Completed: ptr(0.5)}).Status)
	})
}

func TestRecords(t *testing.T) {
	assert.Empty(t, Records(nil))
	assert.Len(t, Records([]models.Anime{{Name: "a"}, {Name: "b"}}), 2)
}

func TestScore(t *testing.T) {
	tests := map[float64]string{
		7:    "7.0",
		8.3:  "8.3",
		9.05: "9.05",
		0:    "0.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, Score(in))
	}
}

func TestAltNames(t *testing.T) {
	assert.Equal(t, "", Display{}.AltNames())
	assert.Equal(t, "Bebop", Display{EnglishName: "Bebop"}.AltNames())
	assert.Equal(t, "ビバップ", Display{JapaneseName: "ビバップ"}.AltNames())
}
