package logging

import (
	"sync"
)

// Logger is a type that is responsible for storing and logging output from the
// checker as necessary
type Logger struct {
	errorCount int
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of checking
	warnings []LogMessage

	// buildPath is used to shorten display paths in errors
	buildPath string

	// m synchronizes the printing of messages: modules are checked
	// concurrently
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, phases and the closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(buildPath string, loglevel int) *Logger {
	return &Logger{
		buildPath: buildPath,
		LogLevel:  loglevel,
		m:         &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message.  Errors are displayed
// immediately; warnings are held until the end of the run.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}

// flushWarnings displays and clears all buffered warnings
func (l *Logger) flushWarnings() {
	l.m.Lock()
	defer l.m.Unlock()

	if l.LogLevel >= LogLevelWarning {
		for _, w := range l.warnings {
			w.display()
		}
	}

	l.warnings = nil
}
