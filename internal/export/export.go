// Package export publishes songbooks as ChordPro files to S3.
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/Conceptual-Machines/chordbook-api/internal/logger"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const contentTypeChordPro = "application/vnd.chordpro; charset=utf-8"

// Uploader is the subset of manager.Uploader used here
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewS3Uploader builds an uploader from the default AWS credential chain
func NewS3Uploader(ctx context.Context, region string) (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return manager.NewUploader(s3.NewFromConfig(cfg)), nil
}

type Exporter struct {
	songbooks *services.SongbookService
	uploader  Uploader
}

func NewExporter(songbooks *services.SongbookService, uploader Uploader) *Exporter {
	return &Exporter{songbooks: songbooks, uploader: uploader}
}

// ExportSongbook uploads every song of the songbook with the given code and
// returns the object keys written, in songbook order
func (e *Exporter) ExportSongbook(ctx context.Context, code, bucket, prefix string) ([]string, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", services.ErrInvalidInput)
	}

	book, err := e.songbooks.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("songbook %q: %w", code, err)
	}
	songs, err := e.songbooks.Songs(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(songs))
	for i := range songs {
		key := path.Join(prefix, book.Code, FileName(&songs[i]))
		_, err := e.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader([]byte(songs[i].Content)),
			ContentType: aws.String(contentTypeChordPro),
		})
		if err != nil {
			return keys, fmt.Errorf("failed to upload %s to S3: %w", key, err)
		}
		keys = append(keys, key)
	}

	logger.Info("Songbook exported", logger.Fields{
		"songbook": book.Code,
		"bucket":   bucket,
		"songs":    len(keys),
	})
	return keys, nil
}

// FileName returns "<number>-<title>.cho" with the title reduced to a lowercase slug.
// Songs without a number are named by title alone.
func FileName(song *models.Song) string {
	slug := slugify(song.Title)
	if slug == "" {
		slug = song.ID.String()
	}
	if song.Number == nil {
		return slug + ".cho"
	}
	return fmt.Sprintf("%03d-%s.cho", *song.Number, slug)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
