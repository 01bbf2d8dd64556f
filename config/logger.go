package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// InitLogger configures the shared logrus instance.
// Unknown levels fall back to info; format is "json" or "text".
func InitLogger(level, format string) *logrus.Logger {
	return initLogger(os.Stdout, level, format)
}

func initLogger(out io.Writer, level, format string) *logrus.Logger {
	Log = logrus.New()

	if format == "text" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}

	Log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	return Log
}

// Logger returns the shared logger, initializing a default one if needed.
func Logger() *logrus.Logger {
	if Log == nil {
		return InitLogger("info", "json")
	}
	return Log
}
