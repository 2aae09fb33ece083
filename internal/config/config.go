package config

import (
	"strings"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Export
		Watch
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Export struct {
		InputFile string
		OutputDir string
		Format    string   // md or json
		Languages []string // Empty means every supported language
	}
	Watch struct {
		Enabled  bool   // Convert in the background while serving
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Log struct {
		Level  string
		Format string // text or json
	}
)

// SplitList turns a comma separated value into a trimmed list.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("tolino_input_file", DefaultInputFile)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("output_format", "md")
	v.SetDefault("languages", "")
	v.SetDefault("watch_enabled", false)
	v.SetDefault("watch_schedule", "*/15 * * * *")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Export: Export{
			InputFile: v.GetString("TOLINO_INPUT_FILE"),
			OutputDir: v.GetString("OUTPUT_DIR"),
			Format:    v.GetString("OUTPUT_FORMAT"),
			Languages: SplitList(v.GetString("LANGUAGES")),
		},
		Watch: Watch{
			Enabled:  v.GetBool("WATCH_ENABLED"),
			Schedule: v.GetString("WATCH_SCHEDULE"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
