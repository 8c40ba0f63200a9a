package models

import "github.com/google/uuid"

// SortBy selects the order of song listings
type SortBy string

const (
	SortByTitle          SortBy = "title"
	SortByNumber         SortBy = "number"
	SortByViewsDesc      SortBy = "views_desc"
	SortByRecentlyAdded  SortBy = "recently_added"
	SortByHasChordsFirst SortBy = "has_chords_first"
	SortByNoChordsFirst  SortBy = "no_chords_first"
)

// ParseSortBy falls back to SortByTitle for unknown values
func ParseSortBy(s string) SortBy {
	switch SortBy(s) {
	case SortByNumber, SortByViewsDesc, SortByRecentlyAdded, SortByHasChordsFirst, SortByNoChordsFirst:
		return SortBy(s)
	default:
		return SortByTitle
	}
}

// OrderClause returns the SQL ORDER BY expression for the sort
func (s SortBy) OrderClause() string {
	switch s {
	case SortByNumber:
		return "number ASC, title ASC"
	case SortByViewsDesc:
		return "views_count DESC, title ASC"
	case SortByRecentlyAdded:
		return "created_at DESC"
	case SortByHasChordsFirst:
		return "has_chords DESC, title ASC"
	case SortByNoChordsFirst:
		return "has_chords ASC, title ASC"
	default:
		return "title ASC"
	}
}

// SongFilters narrows a song listing
type SongFilters struct {
	SongbookID *uuid.UUID
	Key        string
	Search     string
	HasChords  *bool
	Limit      int
	Offset     int
	SortBy     SortBy
}
