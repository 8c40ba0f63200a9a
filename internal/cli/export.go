package cli

import (
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/chordbook-api/internal/config"
	"github.com/Conceptual-Machines/chordbook-api/internal/database"
	"github.com/Conceptual-Machines/chordbook-api/internal/export"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func maxTranspose() int {
	return config.Load().MaxTranspose
}

func newExportCommand() *cobra.Command {
	var (
		songbook string
		bucket   string
		prefix   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload every song of a songbook to S3 as .cho files",
		Long: `Reads the songbook from DATABASE_URL and uploads each song to
s3://<bucket>/<prefix>/<code>/<number>-<title>.cho using the default AWS credentials.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			if bucket == "" {
				bucket = cfg.ExportBucket
			}
			if bucket == "" {
				return errors.New("--bucket or EXPORT_BUCKET is required")
			}

			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			uploader, err := export.NewS3Uploader(ctx, cfg.AWSRegion)
			if err != nil {
				return err
			}

			exporter := export.NewExporter(services.NewSongbookService(db), uploader)
			keys, err := exporter.ExportSongbook(ctx, songbook, bucket, prefix)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "uploaded s3://%s/%s\n", bucket, key)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&songbook, "songbook", "", "songbook code")
	cmd.Flags().StringVar(&bucket, "bucket", "", "target bucket (defaults to EXPORT_BUCKET)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix inside the bucket")
	_ = cmd.MarkFlagRequired("songbook")
	return cmd
}
