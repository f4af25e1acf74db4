package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateS3(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	switch c.Subtitles.Format {
	case "srt", "vtt", "ass":
	default:
		return fmt.Errorf("subtitles.format must be one of srt, vtt, ass (got %q)", c.Subtitles.Format)
	}
	if c.Subtitles.MaxDurationSeconds <= 0 {
		return errors.New("subtitles.max_duration_seconds must be positive")
	}
	if c.Subtitles.MaxLengthChars <= 0 {
		return errors.New("subtitles.max_length_chars must be positive")
	}
	if c.Subtitles.MaxWords <= 0 {
		return errors.New("subtitles.max_words must be positive")
	}
	if c.Subtitles.MinDurationSeconds < 0 {
		return errors.New("subtitles.min_duration_seconds must not be negative")
	}
	if c.Subtitles.MinDurationSeconds > c.Subtitles.MaxDurationSeconds {
		return errors.New("subtitles.min_duration_seconds must not exceed subtitles.max_duration_seconds")
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.FontName == "" {
		return errors.New("style.font_name must be set")
	}
	if c.Style.FontSize <= 0 {
		return errors.New("style.font_size must be positive")
	}
	if c.Style.MarginL < 0 || c.Style.MarginR < 0 || c.Style.MarginV < 0 {
		return errors.New("style margins must not be negative")
	}
	return nil
}

func (c *Config) validateS3() error {
	if !c.S3.Enabled {
		return nil
	}
	if c.S3.Bucket == "" {
		return errors.New("s3.bucket must be set when s3.enabled is true")
	}
	if c.S3.Region == "" {
		return errors.New("s3.region must be set when s3.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("logging.format must be pretty or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}
