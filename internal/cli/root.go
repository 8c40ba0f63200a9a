// Package cli implements the chordbook command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the chordbook command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chordbook",
		Short:         "ChordPro songbook tools",
		Long:          `Parse, transpose and export ChordPro songs from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newParseCommand(),
		newTransposeCommand(),
		newPlainCommand(),
		newMIDICommand(),
		newExportCommand(),
		newSeedCommand(),
	)
	return root
}

func Execute() {
	cobra.CheckErr(NewRootCommand().Execute())
}

// readSong reads a ChordPro file, or stdin when path is "-"
func readSong(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		raw, err := readAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(raw), nil
}
