package cli

import (
	"fmt"

	"github.com/Conceptual-Machines/chordbook-api/internal/config"
	"github.com/Conceptual-Machines/chordbook-api/internal/database"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/Conceptual-Machines/chordbook-api/pkg/embedded"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var code, name string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and load the bundled demo songbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()

			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			imported, err := services.ImportSongbook(
				cmd.Context(),
				services.NewSongbookService(db),
				services.NewSongService(db, cfg.MaxTranspose),
				services.SongbookInput{Code: code, Name: name},
				embedded.Songs,
				embedded.SongsDir,
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d songs into %s\n", imported, code)
			return err
		},
	}

	cmd.Flags().StringVar(&code, "code", "DEMO", "songbook code")
	cmd.Flags().StringVar(&name, "name", "Demo Songbook", "songbook name")
	return cmd
}
