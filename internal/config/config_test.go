package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuemill/internal/config"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, "cuemill", "output")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "cuemill")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Subtitles.Format != "srt" {
		t.Fatalf("unexpected default format: %q", cfg.Subtitles.Format)
	}
	if cfg.Subtitles.MaxDurationSeconds != 5.0 {
		t.Fatalf("unexpected max duration: %v", cfg.Subtitles.MaxDurationSeconds)
	}
	if cfg.Subtitles.MaxLengthChars != 80 {
		t.Fatalf("unexpected max length: %d", cfg.Subtitles.MaxLengthChars)
	}
	if cfg.Subtitles.MaxWords != 30 {
		t.Fatalf("unexpected max words: %d", cfg.Subtitles.MaxWords)
	}
	if cfg.Subtitles.MinDurationSeconds != 1.0 {
		t.Fatalf("unexpected min duration: %v", cfg.Subtitles.MinDurationSeconds)
	}
	if cfg.Subtitles.IncludeSpeakerPrefix {
		t.Fatal("expected speaker prefix disabled by default")
	}
	if cfg.S3.Enabled {
		t.Fatal("expected s3 disabled by default")
	}
	if cfg.Logging.Format != "pretty" {
		t.Fatalf("unexpected logging format: %q", cfg.Logging.Format)
	}
	if cfg.Style.FontName != "Arial" || cfg.Style.FontSize != 24 {
		t.Fatalf("unexpected style defaults: %+v", cfg.Style)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
output_dir = "~/subs"

[subtitles]
format = "ASS"
max_words = 12
include_speaker_prefix = true

[subtitles.speaker_colors]
"SPEAKER_00" = "gold"

[s3]
enabled = true
bucket = "my-subtitles"
prefix = "/captions/"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "subs") {
		t.Fatalf("expected output dir expansion, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Subtitles.Format != "ass" {
		t.Fatalf("expected normalized format ass, got %q", cfg.Subtitles.Format)
	}
	if cfg.Subtitles.MaxWords != 12 {
		t.Fatalf("unexpected max words: %d", cfg.Subtitles.MaxWords)
	}
	if !cfg.Subtitles.IncludeSpeakerPrefix {
		t.Fatal("expected speaker prefix enabled")
	}
	if cfg.Subtitles.SpeakerColors["SPEAKER_00"] != "gold" {
		t.Fatalf("unexpected speaker colors: %v", cfg.Subtitles.SpeakerColors)
	}
	if cfg.Subtitles.MaxDurationSeconds != 5.0 {
		t.Fatalf("expected untouched default max duration, got %v", cfg.Subtitles.MaxDurationSeconds)
	}
	if cfg.S3.Prefix != "captions" {
		t.Fatalf("expected trimmed s3 prefix, got %q", cfg.S3.Prefix)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "bad format",
			contents: "[subtitles]\nformat = \"ttml\"\n",
			want:     "subtitles.format",
		},
		{
			name:     "negative duration",
			contents: "[subtitles]\nmax_duration_seconds = -1.0\n",
			want:     "max_duration_seconds",
		},
		{
			name:     "min exceeds max",
			contents: "[subtitles]\nmax_duration_seconds = 2.0\nmin_duration_seconds = 3.0\n",
			want:     "min_duration_seconds",
		},
		{
			name:     "s3 enabled without bucket",
			contents: "[s3]\nenabled = true\n",
			want:     "s3.bucket",
		},
		{
			name:     "bad log level",
			contents: "[logging]\nlevel = \"trace\"\n",
			want:     "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleWritesParseableDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	defaults := config.Default()
	if cfg.Subtitles.Format != defaults.Subtitles.Format {
		t.Fatalf("sample format diverges from defaults: %q", cfg.Subtitles.Format)
	}
	if cfg.Subtitles.MaxLengthChars != defaults.Subtitles.MaxLengthChars {
		t.Fatalf("sample max length diverges from defaults: %d", cfg.Subtitles.MaxLengthChars)
	}
	if cfg.Style.FontSize != defaults.Style.FontSize {
		t.Fatalf("sample font size diverges from defaults: %d", cfg.Style.FontSize)
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/somewhere/deep")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(tempHome, "somewhere", "deep") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
