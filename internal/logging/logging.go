package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a stderr text handler as the default slog logger and
// returns it. The level string comes straight from HEARTHSIDE_LOG_LEVEL;
// empty or unrecognized values mean info.
func Setup(level string) *slog.Logger {
	lvl := slog.LevelInfo
	if s := strings.TrimSpace(level); s != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(s)); err == nil {
			lvl = parsed
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
