// Package logger configures the file logger. The terminal belongs to the
// outliner, so nothing is ever logged to stdout or stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/quire/internal/constants"
)

const (
	logPrefix     = "quire-"
	logSuffix     = ".log"
	retentionDays = 30

	// EnvLevel enables logging when set to a logrus level name.
	EnvLevel = "QUIRE_LOG"
)

// Options configures New.
type Options struct {
	Level  string // logrus level name; empty disables logging
	LogDir string // defaults to <home>/.quire/logs
	Home   string
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// New returns a JSON logger appending to a dated file. When opts.Level is empty
// the QUIRE_LOG environment variable is consulted; if that is empty as well the
// logger discards all output.
func New(opts Options) (*logrus.Logger, error) {
	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = strings.TrimSpace(os.Getenv(EnvLevel))
	}
	if level == "" {
		return Discard(), nil
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logDir := opts.LogDir
	if logDir == "" {
		home := opts.Home
		if home == "" {
			home, err = os.UserHomeDir()
			if err != nil {
				return nil, err
			}
		}
		logDir = filepath.Join(home, constants.ConfigDir, constants.LogDir)
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(lvl)
	return l, nil
}

// cleanOldLogs removes log files older than retentionDays. Best effort.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(logDir, name))
		}
	}
}
