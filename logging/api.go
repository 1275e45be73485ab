package logging

import "sync"

// logger is a global reference to a shared Logger (created/initialized with the
// compiler, but separated for general usage).  It starts out verbose so that
// library users who never call Initialize still see their errors.
var logger = newLogger("", LogLevelVerbose)

// loggerMu guards replacing the global logger
var loggerMu sync.Mutex

// Initialize initializes the global logger with the provided log level
func Initialize(buildPath string, loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warn", "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	loggerMu.Lock()
	logger = newLogger(buildPath, loglevel)
	loggerMu.Unlock()
}

// ShouldProceed indicates whether or not the log module has encountered an
// error.  Modules are checked concurrently so an error accumulator is more
// practical than threading booleans everywhere.
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors logged since initialization
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// WarningCount returns the number of warnings waiting to be displayed
func WarningCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return len(logger.warnings)
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs a compilation error (user-induced, bad declarations)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, suspicious
// declarations)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to module or checker configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message, IsError: true})
}

// LogBuildWarning logs a warning in the build process
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: warning, IsError: false})
}

// LogFatal logs a fatal error that was not expected: ie. the checker did
// something it wasn't supposed to.  It panics so that deferred cleanup runs.
func LogFatal(message string) {
	logger.m.Lock()
	displayFatalError(message)
	logger.m.Unlock()

	panic(message)
}

// -----------------------------------------------------------------------------
// The functions below only display anything when the log level is verbose.

// LogCheckHeader displays the header printed before a check begins
func LogCheckHeader(moduleName string) {
	if logger.LogLevel == LogLevelVerbose {
		displayCheckHeader(moduleName)
	}
}

// LogBeginPhase starts a phase spinner
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase stops the current phase spinner
func LogEndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(ShouldProceed())
	}
}

// LogFinished displays all buffered warnings and then the closing message
func LogFinished() {
	warningCount := WarningCount()
	logger.flushWarnings()

	if logger.LogLevel > LogLevelSilent {
		displayCheckFinished(ShouldProceed(), ErrorCount(), warningCount)
	}
}
