package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/tutor/internal/report"
	"github.com/pavelanni/tutor/internal/store"
)

var errMissingPaths = errors.New("sheets and group files required (arguments, config keys sheets/group, or TUTOR_SHEETS/TUTOR_GROUP)")

func addLogFlags(f *pflag.FlagSet, level string) {
	f.String("log-level", level, "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func addReportFlags(f *pflag.FlagSet) {
	f.StringP("sheet", "s", "", "Sheet number")
	f.Bool("id", false, "Include student ids (Matrikelnummer)")
	f.Bool("percent", true, "Include the score overview")
	f.Bool("current-written", true, "Count written points of the reported sheet in the totals")
	f.Bool("current-voted", false, "Count voted points of the reported sheet in the totals")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("tutor")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tutor")
	v.AddConfigPath("/etc/tutor")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// documentPaths takes the sheets and group paths from args, falling back
// to the sheets and group config keys.
func documentPaths(v *viper.Viper, args []string) (sheets, group string, err error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 0:
		sheets, group = v.GetString("sheets"), v.GetString("group")
		if sheets == "" || group == "" {
			return "", "", errMissingPaths
		}
		return sheets, group, nil
	}
	return "", "", fmt.Errorf("expected 2 file arguments, got %d", len(args))
}

func reportOptions(v *viper.Viper) report.Options {
	return report.Options{
		IncludeID:      v.GetBool("id"),
		IncludePercent: v.GetBool("percent"),
		CurrentWritten: v.GetBool("current-written"),
		CurrentVoted:   v.GetBool("current-voted"),
	}
}

// buildTable opens the documents read-only and computes the table for
// the --sheet flag.
func buildTable(v *viper.Viper, args []string) (*store.Store, *report.Table, error) {
	sheetsPath, groupPath, err := documentPaths(v, args)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(sheetsPath, groupPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open documents: %w", err)
	}
	table, err := report.Build(st.Sheets(), st.Group(), v.GetString("sheet"), reportOptions(v))
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", v.GetString("sheet"), err)
	}
	return st, table, nil
}
