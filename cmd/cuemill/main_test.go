package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cuemill/internal/catalog"
	"cuemill/internal/config"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")

	configPath := filepath.Join(base, "config.toml")
	encoded, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{cfg: &cfgVal, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got %q", want, output)
	}
}

func writeTranscript(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "meeting.json")
	contents := `{
		"language": "en",
		"segments": [
			{
				"start": 0.0,
				"end": 1.0,
				"text": "Good morning.",
				"speaker": "SPEAKER_00",
				"words": [
					{"word": "Good", "start": 0.0, "end": 0.5},
					{"word": "morning.", "start": 0.6, "end": 1.0}
				]
			},
			{
				"start": 1.5,
				"end": 2.2,
				"text": "Thank you.",
				"speaker": "SPEAKER_01",
				"words": [
					{"word": "Thank", "start": 1.5, "end": 1.8},
					{"word": "you.", "start": 1.9, "end": 2.2}
				]
			}
		]
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return path
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}

func TestConfigShowPrintsEffectiveValues(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.configPath)
	requireContains(t, out, "format = 'srt'")
}

func TestGenerateWritesTrackAndRecordsCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := writeTranscript(t, t.TempDir())

	out, _, err := runCLI(t, []string{"generate", transcriptPath, "--format", "vtt"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Wrote")
	requireContains(t, out, "2 cues")

	written := filepath.Join(env.cfg.Paths.OutputDir, "meeting.vtt")
	content, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read rendered track: %v", err)
	}
	if !strings.HasPrefix(string(content), "WEBVTT") {
		t.Fatalf("unexpected vtt content: %q", content)
	}
	requireContains(t, string(content), "<v Speaker 0>Good morning.</v>")

	out, _, err = runCLI(t, []string{"tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	requireContains(t, out, "meeting.json")
	requireContains(t, out, "vtt")
	requireContains(t, out, "SPEAKER_00, SPEAKER_01")
}

func TestGenerateHonorsOutAndNoCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := writeTranscript(t, t.TempDir())

	_, _, err := runCLI(t, []string{
		"generate", transcriptPath,
		"--format", "srt",
		"--out", "renamed.srt",
		"--speaker-prefix",
		"--no-catalog",
	}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(env.cfg.Paths.OutputDir, "renamed.srt"))
	if err != nil {
		t.Fatalf("read rendered track: %v", err)
	}
	requireContains(t, string(content), "[Speaker 0] Good morning.")

	out, _, err := runCLI(t, []string{"tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	requireContains(t, out, "No tracks recorded yet")
}

func TestGenerateSucceedsWhenCatalogUnavailable(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := writeTranscript(t, t.TempDir())

	// Hold the catalog lock so generate's recording step fails.
	store, err := catalog.Open(env.cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}

	out, _, err := runCLI(t, []string{"generate", transcriptPath, "--format", "srt"}, env.configPath)
	if err != nil {
		t.Fatalf("generate with locked catalog: %v", err)
	}
	requireContains(t, out, "Wrote")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "meeting.srt")); err != nil {
		t.Fatalf("expected rendered track despite catalog failure: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close catalog: %v", err)
	}
	out, _, err = runCLI(t, []string{"tracks"}, env.configPath)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	requireContains(t, out, "No tracks recorded yet")
}

func TestStatsSummarizesTranscript(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := writeTranscript(t, t.TempDir())

	out, _, err := runCLI(t, []string{"stats", transcriptPath}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Language")
	requireContains(t, out, "en")
	requireContains(t, out, "SPEAKER_00")
	requireContains(t, out, "SPEAKER_01")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := writeTranscript(t, t.TempDir())

	if _, _, err := runCLI(t, []string{"generate", transcriptPath, "--format", "ttml"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
