package config

// Default returns a configuration populated with default values.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: "~/cuemill/output",
			LogDir:    "~/cuemill/logs",
			DataDir:   "~/.local/share/cuemill",
		},
		Subtitles: Subtitles{
			Format:               "srt",
			MaxDurationSeconds:   5.0,
			MaxLengthChars:       80,
			MaxWords:             30,
			MinDurationSeconds:   1.0,
			IncludeSpeakerPrefix: false,
			NumericSpeakerLabels: false,
			SpeakerColors:        map[string]string{},
		},
		Style: Style{
			FontName: "Arial",
			FontSize: 24,
			MarginL:  10,
			MarginR:  10,
			MarginV:  20,
		},
		S3: S3{
			Enabled:      false,
			Bucket:       "",
			Prefix:       "",
			Region:       "us-east-1",
			CreateBucket: false,
		},
		Logging: Logging{
			Format: "pretty",
			Level:  "info",
		},
	}
}
