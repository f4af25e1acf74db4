package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"cuemill/internal/catalog"
	"cuemill/internal/config"
	"cuemill/internal/logging"
	"cuemill/internal/sink"
	"cuemill/internal/source"
	"cuemill/internal/subtitle"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outFlag string
	var maxDuration float64
	var maxLength int
	var maxWords int
	var minDuration float64
	var speakerPrefix bool
	var numericSpeakers bool
	var titleFlag string
	var s3Flag bool
	var noCatalog bool

	cmd := &cobra.Command{
		Use:   "generate <transcript.json>",
		Short: "Compile a transcript into a subtitle track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.WithComponent(logger, "generate")

			opts := subtitle.Options{
				Format: subtitle.Format(cfg.Subtitles.Format),
				Limits: subtitle.Limits{
					MaxDuration: cfg.Subtitles.MaxDurationSeconds,
					MaxLength:   cfg.Subtitles.MaxLengthChars,
					MaxWords:    cfg.Subtitles.MaxWords,
					MinDuration: cfg.Subtitles.MinDurationSeconds,
				},
				IncludeSpeakerPrefix: cfg.Subtitles.IncludeSpeakerPrefix,
				NumericSpeakerLabels: cfg.Subtitles.NumericSpeakerLabels,
				SpeakerColors:        cfg.Subtitles.SpeakerColors,
				Title:                strings.TrimSpace(titleFlag),
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				opts.Format = subtitle.Format(strings.ToLower(strings.TrimSpace(formatFlag)))
			}
			if flags.Changed("max-duration") {
				opts.Limits.MaxDuration = maxDuration
			}
			if flags.Changed("max-length") {
				opts.Limits.MaxLength = maxLength
			}
			if flags.Changed("max-words") {
				opts.Limits.MaxWords = maxWords
			}
			if flags.Changed("min-duration") {
				opts.Limits.MinDuration = minDuration
			}
			if flags.Changed("speaker-prefix") {
				opts.IncludeSpeakerPrefix = speakerPrefix
			}
			if flags.Changed("numeric-speakers") {
				opts.NumericSpeakerLabels = numericSpeakers
			}
			if opts.Format == subtitle.FormatASS {
				style := subtitle.DefaultASSStyle()
				style.FontName = cfg.Style.FontName
				style.FontSize = cfg.Style.FontSize
				style.MarginL = cfg.Style.MarginL
				style.MarginR = cfg.Style.MarginR
				style.MarginV = cfg.Style.MarginV
				opts.Style = &style
			}

			transcriptPath := args[0]
			parsed, err := source.FileSource{}.Fetch(cmd.Context(), transcriptPath)
			if err != nil {
				return err
			}

			track, err := subtitle.Assemble(parsed, opts)
			if err != nil {
				return err
			}
			content, err := track.Content()
			if err != nil {
				return err
			}

			destination := strings.TrimSpace(outFlag)
			if destination == "" {
				base := filepath.Base(transcriptPath)
				base = strings.TrimSuffix(base, filepath.Ext(base))
				destination = base + opts.Format.Extension()
			}

			contentType := opts.Format.ContentType()
			locator, err := sink.FileSink{Dir: cfg.Paths.OutputDir}.Put(cmd.Context(), content, destination, contentType)
			if err != nil {
				return err
			}
			logger.Info("wrote subtitle track",
				"path", locator,
				"format", string(opts.Format),
				"cues", len(track.Entries),
				"words", track.Metadata.WordCount,
			)

			if s3Flag || cfg.S3.Enabled {
				s3cfg := cfg.S3
				s3cfg.Enabled = true
				s3Sink, err := sink.NewS3Sink(cmd.Context(), s3cfg)
				if err != nil {
					return err
				}
				remote, err := s3Sink.Put(cmd.Context(), content, destination, contentType)
				if err != nil {
					return err
				}
				logger.Info("uploaded subtitle track", "locator", remote)
				locator = remote
			}

			if !noCatalog {
				id, err := recordTrack(cmd.Context(), cfg, track, opts.Format, transcriptPath, locator)
				if err != nil {
					// The track is already delivered; bookkeeping failures
					// must not fail the run.
					logger.Warn("track not recorded in catalog", logging.Error(err))
				} else {
					logger.Info("recorded track", "id", id)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d cues)\n", locator, len(track.Entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: srt, vtt, or ass")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file name (default: transcript name with format extension)")
	cmd.Flags().Float64Var(&maxDuration, "max-duration", 0, "Maximum cue duration in seconds")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Maximum cue text length in characters")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Maximum words per cue")
	cmd.Flags().Float64Var(&minDuration, "min-duration", 0, "Minimum cue duration in seconds")
	cmd.Flags().BoolVar(&speakerPrefix, "speaker-prefix", false, "Prepend speaker labels to cue text")
	cmd.Flags().BoolVar(&numericSpeakers, "numeric-speakers", false, "Label speakers sequentially in first-seen order")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Track title (ass output only)")
	cmd.Flags().BoolVar(&s3Flag, "s3", false, "Upload the track to the configured S3 bucket")
	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "Skip recording the track in the catalog")

	return cmd
}

func recordTrack(ctx context.Context, cfg *config.Config, track *subtitle.SubtitleTrack, format subtitle.Format, source, destination string) (string, error) {
	store, err := catalog.Open(cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	speakers := make([]string, 0, len(track.Metadata.Speakers))
	for id := range track.Metadata.Speakers {
		speakers = append(speakers, id)
	}
	sort.Strings(speakers)

	saved, err := store.Save(ctx, catalog.Track{
		Source:      source,
		Format:      string(format),
		Language:    track.Metadata.Language,
		CueCount:    len(track.Entries),
		WordCount:   track.Metadata.WordCount,
		Duration:    track.Metadata.Duration,
		Speakers:    speakers,
		Destination: destination,
	})
	if err != nil {
		return "", err
	}
	return saved.ID, nil
}
