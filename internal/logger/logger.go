package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. LOG_LEVEL picks the level (info when unset
// or unknown) and LOG_FORMAT=text switches off JSON output for local runs.
func New(service string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
	if service != "" {
		l.AddHook(serviceHook(service))
	}
	return l
}

func ParseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// serviceHook stamps every entry with the emitting binary.
type serviceHook string

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = string(h)
	}
	return nil
}
