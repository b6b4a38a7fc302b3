// Package logging builds the logrus logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/config"
)

// New returns a logger writing to cfg.LogFile, or stderr when unset.
// The returned closer releases the log file and is never nil.
func New(cfg config.Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if cfg.LogFile == "" {
		log.SetOutput(os.Stderr)
		return log, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}

// Quiet drops stderr output so a full-screen UI isn't painted over.
// Loggers writing to a file are left alone.
func Quiet(log *logrus.Logger) {
	if log.Out == os.Stderr {
		log.SetOutput(io.Discard)
	}
}
