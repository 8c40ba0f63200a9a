package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongDeriveFromContent(t *testing.T) {
	song := Song{Content: "{title: Amazing Grace}\n{key: G}\n{tempo: 80}\n{time: 3/4}\n[G]Amazing [G7]grace"}

	song.DeriveFromContent()

	assert.Equal(t, "Amazing Grace", song.Title)
	require.NotNil(t, song.OriginalKey)
	assert.Equal(t, "G", *song.OriginalKey)
	require.NotNil(t, song.Tempo)
	assert.Equal(t, 80, *song.Tempo)
	require.NotNil(t, song.TimeSignature)
	assert.Equal(t, "3/4", *song.TimeSignature)
	assert.Equal(t, "Amazing grace", song.ContentPlain)
	assert.Equal(t, "Amazing grace", song.FirstLine)
	assert.True(t, song.HasChords)
}

func TestSongDeriveFromContent_KeepsExplicitFields(t *testing.T) {
	key := "A"
	song := Song{Title: "Custom", OriginalKey: &key, Content: "{title: Other}\n{key: G}\nWords only"}

	song.DeriveFromContent()

	assert.Equal(t, "Custom", song.Title)
	assert.Equal(t, "A", *song.OriginalKey)
	assert.False(t, song.HasChords)
	assert.Nil(t, song.Tempo)
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, SortByViewsDesc, ParseSortBy("views_desc"))
	assert.Equal(t, SortByNumber, ParseSortBy("number"))
	assert.Equal(t, SortByTitle, ParseSortBy(""))
	assert.Equal(t, SortByTitle, ParseSortBy("DROP TABLE songs"))
	assert.Equal(t, "has_chords DESC, title ASC", SortByHasChordsFirst.OrderClause())
}

func TestCanEditCatalogue(t *testing.T) {
	assert.True(t, CanEditCatalogue(RoleAdmin))
	assert.True(t, CanEditCatalogue(RoleEditor))
	assert.False(t, CanEditCatalogue(RoleUser))
	assert.False(t, CanEditCatalogue(""))
}
