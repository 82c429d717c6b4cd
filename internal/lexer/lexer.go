// Package lexer splits source lines into number and word tokens.
//
// A token is any run of non-space characters, where space is anything
// unicode.IsSpace accepts. Runs that parse as a signed 32-bit
// decimal integer become numbers; everything else, including integers that
// overflow 32 bits, becomes a word.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Kind distinguishes number tokens from word tokens.
type Kind int

// Token kinds, also used as lexmachine token types.
const (
	Word Kind = iota
	Number
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Number:
		return "number"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one scanned lexeme with its position inside the scanned text.
type Token struct {
	Kind Kind
	Text string
	Num  int32
	Line int
	Col  int
}

func (tok Token) String() string {
	if tok.Kind == Number {
		return strconv.FormatInt(int64(tok.Num), 10)
	}
	return tok.Text
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

func compiled() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lex := lexmachine.NewLexer()
		// the number pattern is added first so that it wins ties against the
		// word pattern; longer word matches like "12abc" still win outright
		lex.Add([]byte(`[\+\-]?[0-9]+`), number)
		lex.Add([]byte(`[^ \t\r\n]+`), word)
		lex.Add([]byte(`( |\t|\n|\r)+`), skip)
		if err := lex.Compile(); err != nil {
			lexerErr = fmt.Errorf("compiling lexer DFA: %w", err)
			return
		}
		lexer = lex
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) { return nil, nil }

func word(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(int(Word), string(m.Bytes), m), nil
}

func number(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	n, err := strconv.ParseInt(string(m.Bytes), 10, 32)
	if err != nil {
		// out of int32 range: not a number, so it names a word
		return s.Token(int(Word), string(m.Bytes), m), nil
	}
	return s.Token(int(Number), int32(n), m), nil
}

// blankSpaces turns every space rune into as many ASCII spaces as it has
// bytes, so that the DFA only needs to know ASCII space and columns are kept.
// Line breaks stay as they are for line counting.
func blankSpaces(text string) []byte {
	if strings.IndexFunc(text, isOtherSpace) < 0 {
		return []byte(text)
	}
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		if r != utf8.RuneError && isOtherSpace(r) {
			for j := 0; j < n; j++ {
				buf = append(buf, ' ')
			}
		} else {
			buf = append(buf, text[i:i+n]...)
		}
		i += n
	}
	return buf
}

func isOtherSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return false
	}
	return unicode.IsSpace(r)
}

// Tokenize scans text into tokens.
func Tokenize(text string) ([]Token, error) {
	lex, err := compiled()
	if err != nil {
		return nil, err
	}
	scan, err := lex.Scanner(blankSpaces(text))
	if err != nil {
		return nil, err
	}
	var toks []Token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			return toks, err
		}
		lt := tok.(*lexmachine.Token)
		t := Token{
			Kind: Kind(lt.Type),
			Text: string(lt.Lexeme),
			Line: lt.StartLine,
			Col:  lt.StartColumn,
		}
		if t.Kind == Number {
			t.Num = lt.Value.(int32)
		}
		toks = append(toks, t)
	}
	return toks, nil
}
