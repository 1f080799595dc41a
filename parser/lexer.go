// Copyright 2023-2026 Mica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/micalang/micacompile/ast"
	"github.com/micalang/micacompile/reporter"
	"github.com/micalang/micacompile/token"
)

// runeReader walks the input byte slice one rune at a time with support for
// unreading the most recent runes and marking the start of the current token.
type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	if r == utf8.RuneError {
		rr.err = fmt.Errorf("invalid UTF8 at offset %d: %x", rr.pos, rr.data[rr.pos])
		return 0, 0, rr.err
	}
	rr.pos += sz
	return r, sz, nil
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		panic("unread past mark")
	}
	if rr.err == io.EOF {
		// Unreading after hitting end of input resumes normal reads.
		rr.err = nil
	}
	rr.pos = newPos
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return string(rr.data[rr.mark:rr.pos])
}

// fileInfo records the byte offset of every line start so that byte offsets
// can be converted into line/column positions after the fact.
type fileInfo struct {
	data       []byte
	lineStarts []int
}

func newFileInfo(data []byte) *fileInfo {
	return &fileInfo{data: data, lineStarts: []int{0}}
}

// addLine records that a new line begins at the given offset. Offsets must
// be added in increasing order; the lexer consumes each newline exactly once.
func (f *fileInfo) addLine(offset int) {
	f.lineStarts = append(f.lineStarts, offset)
}

// sourcePos converts a byte offset into a 1-based line/column position.
// Columns count runes, not bytes.
func (f *fileInfo) sourcePos(offset int) ast.SourcePos {
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	start := f.lineStarts[line-1]
	col := utf8.RuneCount(f.data[start:offset]) + 1
	return ast.SourcePos{Line: line, Col: col}
}

// Lexer scans Mica source text into the full token sequence in a single
// left-to-right pass with one rune of lookahead.
//
// A Lexer is single-use: create one per input. It holds a private cursor and
// must not be shared across concurrent calls.
type Lexer struct {
	input *runeReader
	info  *fileInfo
}

// NewLexer returns a Lexer over the given source text.
func NewLexer(source string) *Lexer {
	data := []byte(source)
	return &Lexer{
		input: &runeReader{data: data},
		info:  newFileInfo(data),
	}
}

// Tokenize scans Mica source text and returns the token sequence, always
// terminated by a single EOF token. It is shorthand for NewLexer + Tokenize.
func Tokenize(source string) ([]token.Token, error) {
	return NewLexer(source).Tokenize()
}

// Tokenize scans the entire input eagerly. On success the returned sequence
// ends with exactly one EOF token. The first unrecognized character fails
// the whole scan with a positioned lexical error; there is no recovery.
//
// Whitespace and comments are discarded and are not recoverable downstream.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (token.Token, error) {
	for {
		l.input.setMark()
		start := l.input.offset()

		c, _, err := l.input.readRune()
		if err == io.EOF {
			return l.newToken(token.EOF, start), nil
		} else if err != nil {
			return token.Token{}, reporter.Error(l.info.sourcePos(start), err)
		}

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			continue
		case c == '\n':
			l.info.addLine(l.input.offset())
			continue
		case c == '_' || isLetter(c):
			l.readIdentifier()
			return l.newToken(token.Lookup(l.input.getMark()), start), nil
		case isDigit(c):
			l.readNumber()
			return l.newToken(token.Number, start), nil
		case c == '\'' || c == '"':
			return l.readString(c, start)
		}

		if c == '/' {
			// A second slash starts a line comment; anything else means
			// this is the division operator.
			cn, szn, err := l.input.readRune()
			if err == nil && cn == '/' {
				l.skipLineComment()
				continue
			}
			if err == nil {
				l.input.unreadRune(szn)
			}
			return l.newToken(token.Slash, start), nil
		}

		if kind, ok := l.operator(c); ok {
			return l.newToken(kind, start), nil
		}

		return token.Token{}, reporter.Errorf(l.info.sourcePos(start), "unexpected character %q", c)
	}
}

// operator classifies punctuation, using one rune of lookahead to
// disambiguate the two-character operators.
func (l *Lexer) operator(c rune) (token.Kind, bool) {
	switch c {
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case ':':
		return token.Colon, true
	case ';':
		return token.Semicolon, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '%':
		return token.Percent, true
	case '+':
		if l.peekIs('=') {
			return token.PlusAssign, true
		}
		return token.Plus, true
	case '=':
		if l.peekIs('=') {
			return token.Equals, true
		}
		return token.Assign, true
	case '!':
		if l.peekIs('=') {
			return token.NotEquals, true
		}
		return token.Bang, true
	case '<':
		if l.peekIs('=') {
			return token.LessEq, true
		}
		return token.Less, true
	case '>':
		if l.peekIs('=') {
			return token.GreaterEq, true
		}
		return token.Greater, true
	}
	return 0, false
}

// peekIs consumes the next rune if it equals want.
func (l *Lexer) peekIs(want rune) bool {
	c, sz, err := l.input.readRune()
	if err != nil {
		return false
	}
	if c == want {
		return true
	}
	l.input.unreadRune(sz)
	return false
}

func (l *Lexer) newToken(kind token.Kind, start int) token.Token {
	pos := l.info.sourcePos(start)
	return token.Token{
		Kind:   kind,
		Text:   l.input.getMark(),
		Line:   pos.Line,
		Column: pos.Col,
	}
}

func (l *Lexer) readIdentifier() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c != '_' && !isLetter(c) && !isDigit(c) {
			l.input.unreadRune(sz)
			return
		}
	}
}

// readNumber scans a contiguous digit run optionally containing one decimal
// point. No sign is consumed; unary minus is a parser-level operator.
func (l *Lexer) readNumber() {
	seenDot := false
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if isDigit(c) {
			continue
		}
		if c == '.' && !seenDot {
			// Only part of the number if a digit follows; otherwise it is a
			// member access on a number, which the parser will reject.
			cn, szn, err := l.input.readRune()
			if err == nil && isDigit(cn) {
				seenDot = true
				continue
			}
			if err == nil {
				l.input.unreadRune(szn)
			}
		}
		l.input.unreadRune(sz)
		return
	}
}

// readString scans a string literal delimited by the given quote character.
// There is no escape-sequence handling; every character up to the closing
// quote is taken literally.
func (l *Lexer) readString(quote rune, start int) (token.Token, error) {
	var value []rune
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return token.Token{}, reporter.Errorf(l.info.sourcePos(start), "unterminated string literal")
		}
		if c == '\n' {
			return token.Token{}, reporter.Errorf(l.info.sourcePos(start), "string literal not terminated before end of line")
		}
		if c == quote {
			break
		}
		value = append(value, c)
	}
	pos := l.info.sourcePos(start)
	return token.Token{
		Kind:   token.String,
		Text:   string(value),
		Line:   pos.Line,
		Column: pos.Col,
	}, nil
}

func (l *Lexer) skipLineComment() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c == '\n' {
			// Leave the newline for the main loop so the line table stays
			// consistent.
			l.input.unreadRune(sz)
			return
		}
	}
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
