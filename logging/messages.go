package logging

// TextPosition is the span of source text a message refers to.  Lines start at
// 1; columns start at 0 and the end column is exclusive.
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

// LogContext identifies the file a compile message was produced in
type LogContext struct {
	// ModuleName is the name of the module the file belongs to
	ModuleName string

	// ModuleRoot is used to shorten display paths
	ModuleRoot string

	// FilePath is the absolute path to the file.  It is empty for messages
	// about the module file itself (eg. configured coercion checks).
	FilePath string
}

// LogMessage is the interface for every kind of message the logger handles
type LogMessage interface {
	isError() bool
	display()
}

// CompileMessage is an error or warning about user declarations
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// Enumeration of compile message kinds
const (
	LMKSyntax = iota
	LMKName
	LMKDef
	LMKUsage
	LMKGraph
	LMKRole
	LMKSignature
	LMKCoerce
)

// ConfigError is an error (or warning) about the module configuration or the
// environment rather than the declarations themselves
type ConfigError struct {
	Kind    string
	Message string
	IsError bool
}

func (ce *ConfigError) isError() bool {
	return ce.IsError
}
