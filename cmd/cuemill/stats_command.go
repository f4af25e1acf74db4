package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"cuemill/internal/source"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <transcript.json>",
		Short: "Summarize a transcript without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := source.FileSource{}.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			stats := parsed.Stats()

			out := cmd.OutOrStdout()
			summary := renderTable(out,
				[]string{"FIELD", "VALUE"},
				[][]string{
					{"Language", stats.Language},
					{"Segments", strconv.Itoa(stats.SegmentCount)},
					{"Words", strconv.Itoa(stats.WordCount)},
					{"Duration", fmt.Sprintf("%.1fs", stats.Duration)},
					{"Speakers", strconv.Itoa(len(stats.SpeakerSegments))},
				},
				[]columnAlignment{alignLeft, alignRight},
			)
			fmt.Fprintln(out, summary)

			if len(stats.SpeakerSegments) == 0 {
				return nil
			}

			speakers := make([]string, 0, len(stats.SpeakerSegments))
			for speaker := range stats.SpeakerSegments {
				speakers = append(speakers, speaker)
			}
			sort.Strings(speakers)

			rows := make([][]string, 0, len(speakers))
			for _, speaker := range speakers {
				rows = append(rows, []string{
					speaker,
					strconv.Itoa(stats.SpeakerSegments[speaker]),
					strconv.Itoa(stats.SpeakerWords[speaker]),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"SPEAKER", "SEGMENTS", "WORDS"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}
