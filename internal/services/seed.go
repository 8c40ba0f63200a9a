package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ImportSongbook creates the songbook and adds every .cho file found in dir.
// A leading number in the file name ("012-title.cho") becomes the song number.
// Importing into a songbook that already has songs is a no-op.
func ImportSongbook(ctx context.Context, books *SongbookService, songs *SongService, in SongbookInput, fsys fs.FS, dir string) (int, error) {
	book, err := books.GetByCode(ctx, strings.TrimSpace(in.Code))
	switch {
	case errors.Is(err, ErrNotFound):
		if book, err = books.Create(ctx, in); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	case book.SongsCount > 0:
		return 0, nil
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.cho"))
	if err != nil {
		return 0, fmt.Errorf("failed to list songs: %w", err)
	}
	sort.Strings(files)

	imported := 0
	for i, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return imported, fmt.Errorf("failed to read %s: %w", file, err)
		}

		number := fileNumber(path.Base(file), i+1)
		if _, err := songs.Create(ctx, SongInput{
			SongbookID: &book.ID,
			Number:     &number,
			Content:    string(raw),
		}); err != nil {
			return imported, fmt.Errorf("%s: %w", file, err)
		}
		imported++
	}
	return imported, nil
}

func fileNumber(name string, fallback int) int {
	prefix, _, found := strings.Cut(name, "-")
	if !found {
		return fallback
	}
	n, err := strconv.Atoi(prefix)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
