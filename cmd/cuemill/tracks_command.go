package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cuemill/internal/catalog"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List rendered subtitle tracks from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			tracks, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No tracks recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				rows = append(rows, []string{
					shortID(track.ID),
					track.CreatedAt.UTC().Format(time.RFC3339),
					track.Source,
					track.Format,
					strconv.Itoa(track.CueCount),
					strconv.Itoa(track.WordCount),
					fmt.Sprintf("%.1fs", track.Duration),
					strings.Join(track.Speakers, ", "),
					track.Destination,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "CREATED", "SOURCE", "FORMAT", "CUES", "WORDS", "DURATION", "SPEAKERS", "DESTINATION"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum tracks to show (0 for all)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
