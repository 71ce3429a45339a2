package logging

// logger is a global reference to a shared Logger (created/initialized with the
// compiler, but separated for general usage)
var logger Logger

func init() {
	// tests and library users get a sane logger without calling Initialize
	logger = newLogger("", LogLevelSilent)
}

// Initialize initializes the global logger with the provided log level
func Initialize(buildPath string, loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(buildPath, loglevel)
}

// ShouldProceed indicates whether or not the log module has encountered any
// errors.  This is useful for sections of the compiler where multiple items
// are processed and having an error accumulator is practical
func ShouldProceed() bool {
	return logger.ErrorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// DisplayCompileError displays a compilation error (user-induced, bad code)
// that a stage returned.  The error itself is constructed by the stage via
// `NewCompileError` and propagated as a regular error value; display is the
// caller's decision.
func DisplayCompileError(cm *CompileMessage) {
	logger.handleMsg(cm)
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to project or compiler configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogConfigWarning logs a warning related to project or compiler configuration
func LogConfigWarning(kind, message string) {
	if logger.LogLevel > LogLevelError {
		PrintWarningMessage(kind+" Warning", message)
	}
}

// LogInfo logs a verbose-level informational message (eg. resolved imports)
func LogInfo(tag, msg string) {
	if logger.LogLevel == LogLevelVerbose {
		PrintInfoMessage(tag, msg)
	}
}

// LogBeginPhase displays the start of a compilation phase at verbose level
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase closes out the current compilation phase
func LogEndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// LogCompilationFinished displays the closing message and all accumulated
// warnings
func LogCompilationFinished(success bool) {
	logger.flushWarnings()

	if logger.LogLevel > LogLevelSilent {
		displayCompilationFinished(success, logger.ErrorCount, len(logger.warnings))
	}
}
