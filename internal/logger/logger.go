package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// New 建立 JSON（或 pretty 時為 console 格式）的 zerolog logger
// level 無法解析時使用 info
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
