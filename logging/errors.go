package logging

import "fmt"

// LogContext stores the shared context for messages produced while processing
// a single source file
type LogContext struct {
	// FilePath is the path to the file being compiled
	FilePath string
}

// TextPosition is a selection of source text used to highlight erroneous code.
// Lines start at 1; columns are counted with tabs as four columns.
type TextPosition struct {
	StartLn  int
	StartCol int
	EndLn    int
	EndCol   int
}

// LogMessage is implemented by anything the logger can process and display
type LogMessage interface {
	display()
	isError() bool
}

// Enumeration of the different kinds of compile messages.  These cover the
// full failure taxonomy of the pipeline: token kinds are produced by the
// scanner, syntax kinds by the parser, and the name/typing/definition/usage
// kinds by the lowering engine.
const (
	LMKToken  = iota // malformed or unrecognized token
	LMKSyntax        // unexpected token, missing punctuation, unmatched braces
	LMKName          // unknown variable or function name
	LMKTyping        // unknown type name or unsupported coercion
	LMKDef           // bad definition (eg. duplicate function)
	LMKImport        // malformed or unresolvable import
	LMKUsage         // construct used somewhere it isn't allowed
)

// CompileMessage represents a message produced while compiling user code.  It
// implements `error` so that every stage of the pipeline can return it as a
// structured failure instead of aborting the process: the caller decides
// whether to display it, collect it, or recover from it.
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) Error() string {
	if cm.Position != nil {
		return fmt.Sprintf("%s error: %s (line %d)", compileMsgStrings[cm.Kind], cm.Message, cm.Position.StartLn)
	}

	return fmt.Sprintf("%s error: %s", compileMsgStrings[cm.Kind], cm.Message)
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// NewCompileError creates a compile error of the given kind at the given
// position.  The position may be nil for errors with no useful location.
func NewCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) *CompileMessage {
	return &CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	}
}

// ConfigError represents an error related to project or compiler configuration
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) Error() string {
	return ce.Kind + " error: " + ce.Message
}

func (ce *ConfigError) isError() bool {
	return true
}
