package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger: JSON in production, text
// otherwise. Unknown levels fall back to info.
func Setup(level, env string) *logrus.Logger {
	return configure(logrus.StandardLogger(), os.Stderr, level, env)
}

// New returns a separately configured logger writing to w.
func New(w io.Writer, level, env string) *logrus.Logger {
	return configure(logrus.New(), w, level, env)
}

func configure(l *logrus.Logger, w io.Writer, level, env string) *logrus.Logger {
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
