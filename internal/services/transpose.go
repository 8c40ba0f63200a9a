package services

import (
	"fmt"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
)

const halfOctave = 6

// CheckTranspose rejects shifts larger than max semitones in either direction
func CheckTranspose(semitones, max int) error {
	if semitones < -max || semitones > max {
		return fmt.Errorf("%w: %d semitones exceeds ±%d", ErrInvalidTranspose, semitones, max)
	}
	return nil
}

// TransposeSong renders a copy of song shifted by semitones. The stored song is not modified.
func TransposeSong(song *models.Song, semitones int) *models.TransposedSong {
	out := &models.TransposedSong{Song: *song, Semitones: semitones, CurrentKey: song.OriginalKey}
	if semitones == 0 {
		return out
	}

	useFlats := songUsesFlats(song, semitones)
	out.Content = chordpro.TransposeContentSpelled(song.Content, semitones, useFlats)
	if song.OriginalKey != nil {
		key := chordpro.TransposeKey(*song.OriginalKey, semitones, useFlats)
		out.CurrentKey = &key
	}
	return out
}

// transposedKey returns the song's key after shifting, or nil when the song has no key
func transposedKey(song *models.Song, semitones int) *string {
	if song == nil || song.OriginalKey == nil {
		return nil
	}
	key := chordpro.TransposeKey(*song.OriginalKey, semitones, songUsesFlats(song, semitones))
	return &key
}

// songUsesFlats picks the spelling from the stored key, falling back to the
// content's key directive when the stored key is missing or not a note
func songUsesFlats(song *models.Song, semitones int) bool {
	if song.OriginalKey != nil {
		if useFlats, ok := chordpro.KeyUsesFlats(*song.OriginalKey, semitones); ok {
			return useFlats
		}
	}
	return chordpro.ShouldUseFlats(song.Content, semitones)
}

// ShiftBetweenKeys returns the smallest shift (-5 to 6) that moves from one key to another
func ShiftBetweenKeys(from, to string) (int, error) {
	up, ok := chordpro.SemitonesBetween(from, to)
	if !ok {
		return 0, fmt.Errorf("%w: cannot move from %q to %q", ErrInvalidTranspose, from, to)
	}
	return shortestShift(up), nil
}

// shortestShift turns an upward distance (0-11) into the smallest shift with the same result
func shortestShift(up int) int {
	if up > halfOctave {
		return up - 12
	}
	return up
}
