// Package logging provides per-component diagnostic logging for
// screensense. All components of one process append to the same run
// file under ~/.screensense/logs/, keyed by a generated run ID, so a
// browser session and its vision processors interleave in one place.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes level-tagged, component-tagged lines for one component.
type Logger struct {
	runID     string
	component string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	closeOnce sync.Once
}

var (
	runID     string
	runIDOnce sync.Once

	logDir  string
	dirOnce sync.Once
	dirErr  error
)

func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func initLogDir() error {
	dirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			dirErr = fmt.Errorf("resolve home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".screensense", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			dirErr = fmt.Errorf("create log directory: %w", err)
		}
	})
	return dirErr
}

// New creates a logger for one component. When the log directory or file
// cannot be opened it returns a stderr logger together with the error so
// callers can keep going in degraded mode.
func New(component string) (*Logger, error) {
	if err := initLogDir(); err != nil {
		return fallback(component, err), err
	}

	path := filepath.Join(logDir, getRunID()+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("open log file: %w", err)
		return fallback(component, err), err
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

func fallback(component string, err error) *Logger {
	l := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	l.Printf("file logging unavailable, using stderr: %v", err)
	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    l,
	}
}

func (l *Logger) emit(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] [%s] %s", ts, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.emit("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.emit("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.emit("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.emit("ERROR", format, v...) }

// RunID returns the process-wide run identifier shared by all loggers.
func (l *Logger) RunID() string { return l.runID }

// Close closes the underlying file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
