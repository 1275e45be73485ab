package syntax

import (
	"fmt"
	"rolec/logging"
)

// Token represents a single lexical token
type Token struct {
	// Kind must be one of the enumerated token kinds
	Kind int

	Value string

	Pos *logging.TextPosition
}

// Enumeration of token kinds
const (
	TOK_DATA = iota
	TOK_NEWTYPE
	TOK_FAMILY
	TOK_CLASS
	TOK_TYPE

	TOK_CON // capitalized identifier: constructors, classes, families
	TOK_VAR // lowercase identifier: parameters, role names
	TOK_UNDERSCORE

	TOK_ASSIGN
	TOK_PIPE
	TOK_ARROW
	TOK_FATARROW
	TOK_TILDE
	TOK_COMMA
	TOK_LPAREN
	TOK_RPAREN

	TOK_EOF
)

// tokenNames are used to describe expected tokens in syntax errors
var tokenNames = map[int]string{
	TOK_DATA:       "`data`",
	TOK_NEWTYPE:    "`newtype`",
	TOK_FAMILY:     "`family`",
	TOK_CLASS:      "`class`",
	TOK_TYPE:       "`type`",
	TOK_CON:        "type constructor",
	TOK_VAR:        "type variable",
	TOK_UNDERSCORE: "`_`",
	TOK_ASSIGN:     "`=`",
	TOK_PIPE:       "`|`",
	TOK_ARROW:      "`->`",
	TOK_FATARROW:   "`=>`",
	TOK_TILDE:      "`~`",
	TOK_COMMA:      "`,`",
	TOK_LPAREN:     "`(`",
	TOK_RPAREN:     "`)`",
	TOK_EOF:        "end of file",
}

// describe returns a user-facing description of a token
func (t *Token) describe() string {
	if t.Kind == TOK_EOF {
		return "end of file"
	}

	return fmt.Sprintf("`%s`", t.Value)
}

// -----------------------------------------------------------------------------

// SyntaxError is an error in the text of a declaration file: an unknown rune
// or an unexpected token
type SyntaxError struct {
	Message string
	Pos     *logging.TextPosition
}

func (se *SyntaxError) Error() string {
	if se.Pos == nil {
		return se.Message
	}

	return fmt.Sprintf("%d:%d: %s", se.Pos.StartLn, se.Pos.StartCol, se.Message)
}

// raise creates a new syntax error
func raise(pos *logging.TextPosition, msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(msg, args...), Pos: pos}
}
