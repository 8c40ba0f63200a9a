package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/playback"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/spf13/cobra"
)

func readAll(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	return string(raw), err
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the parsed structure of a song as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSong(cmd, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chordpro.Parse(content))
		},
	}
}

func newTransposeCommand() *cobra.Command {
	var (
		semitones int
		toKey     string
	)

	cmd := &cobra.Command{
		Use:   "transpose <file>",
		Short: "Print a song transposed by --semitones or to --to-key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSong(cmd, args[0])
			if err != nil {
				return err
			}

			shift, err := resolveShift(content, cmd.Flags().Changed("semitones"), semitones, toKey)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), chordpro.TransposeContent(content, shift))
			return err
		},
	}

	cmd.Flags().IntVarP(&semitones, "semitones", "s", 0, "semitones to shift (negative is down)")
	cmd.Flags().StringVarP(&toKey, "to-key", "k", "", "target key; the song needs a {key} directive")
	cmd.MarkFlagsMutuallyExclusive("semitones", "to-key")
	return cmd
}

// resolveShift enforces the MAX_TRANSPOSE bound used by the API
func resolveShift(content string, bySemitones bool, semitones int, toKey string) (int, error) {
	switch {
	case toKey != "":
		from, ok := chordpro.ExtractKey(content)
		if !ok || from == "" {
			return 0, errors.New("--to-key needs a {key} directive in the song")
		}
		return services.ShiftBetweenKeys(from, toKey)
	case bySemitones:
		return semitones, services.CheckTranspose(semitones, maxTranspose())
	default:
		return 0, errors.New("one of --semitones or --to-key is required")
	}
}

func newPlainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plain <file>",
		Short: "Print the lyrics without chords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSong(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), chordpro.StripChords(content))
			return err
		},
	}
}

func newMIDICommand() *cobra.Command {
	var (
		output    string
		semitones int
		tempo     int
	)

	cmd := &cobra.Command{
		Use:   "midi <file>",
		Short: "Write the chord progression as a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSong(cmd, args[0])
			if err != nil {
				return err
			}
			if err := services.CheckTranspose(semitones, maxTranspose()); err != nil {
				return err
			}

			song := chordpro.Parse(chordpro.TransposeContent(content, semitones))

			// render first so a failed render leaves no file behind
			var buf bytes.Buffer
			if err := playback.WriteProgression(&buf, song, tempo); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chords to %s\n", len(playback.Progression(song)), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "MIDI file to write")
	cmd.Flags().IntVarP(&semitones, "semitones", "s", 0, "semitones to shift before rendering")
	cmd.Flags().IntVar(&tempo, "tempo", 0, "beats per minute (defaults to the song's {tempo})")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
