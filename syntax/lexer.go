package syntax

import (
	"bufio"
	"io"
	"rolec/logging"
	"strings"
	"unicode"
)

// Lexer is responsible for tokenizing a declaration file
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer reading from r
func NewLexer(r *bufio.Reader) *Lexer {
	return &Lexer{
		file:    r,
		tokBuff: &strings.Builder{},
		line:    1,
		col:     0,
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '-':
			if tok, err := l.lexCommentOrArrow(); tok != nil || err != nil {
				return tok, err
			}
		default:
			if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			}

			return l.lexPunct()
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps punctuation strings to their token kind
var symbolPatterns = map[string]int{
	"=":  TOK_ASSIGN,
	"=>": TOK_FATARROW,
	"|":  TOK_PIPE,
	"~":  TOK_TILDE,
	",":  TOK_COMMA,
	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
}

// lexPunct lexes a punctuation symbol
func (l *Lexer) lexPunct() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]
	if !ok {
		return nil, raise(l.getPos(), "unknown rune: `%s`", l.tokBuff.String())
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if longer, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = longer
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// lexCommentOrArrow lexes either a line comment (`--`) or an arrow (`->`).  It
// returns no token and no error for a comment.
func (l *Lexer) lexCommentOrArrow() (*Token, error) {
	l.mark()
	l.eat()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '>':
		l.eat()
		return l.makeToken(TOK_ARROW), nil
	case '-':
		for c != '\n' && c != -1 {
			if c, err = l.skip(); err != nil {
				return nil, err
			}
		}

		l.tokBuff.Reset()
		return nil, nil
	default:
		return nil, raise(l.getPos(), "unknown rune: `-`")
	}
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings to their token kind
var keywordPatterns = map[string]int{
	"data":    TOK_DATA,
	"newtype": TOK_NEWTYPE,
	"family":  TOK_FAMILY,
	"class":   TOK_CLASS,
	"type":    TOK_TYPE,
	"_":       TOK_UNDERSCORE,
}

// lexIdentOrKeyword lexes an identifier or a keyword.  Whether an identifier
// is a constructor or a variable is decided by its first letter.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	first, _ := l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isIdentChar(c) {
			break
		}

		l.eat()
	}

	if kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind), nil
	}

	if unicode.IsUpper(first) {
		return l.makeToken(TOK_CON), nil
	}

	return l.makeToken(TOK_VAR), nil
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Pos:   l.getPos(),
	}
}

// getPos calculates a text position based on the lexer's current state
func (l *Lexer) getPos() *logging.TextPosition {
	return &logging.TextPosition{
		StartLn:  l.startLine,
		StartCol: l.startCol,
		EndLn:    l.line,
		EndCol:   l.col,
	}
}

// eat moves the lexer forward one rune and writes the rune to the token
// buffer.  If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune without writing it to the token
// buffer
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune without moving the lexer forward
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isFirstIdentChar returns whether c could be the first rune of an identifier
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

// isIdentChar returns whether c could be a later rune of an identifier.  Primes
// are allowed as in `a'`.
func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || unicode.IsDigit(c) || c == '\''
}
