// Package lexer turns minic source code into the token sequence the parsing driver consumes.
package lexer

import (
	"fmt"
	"io"

	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/symtab"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minic.lexer")

// InvalidTokenError reports a character sequence no lexical kind matches. Row and Col are 0-based.
type InvalidTokenError struct {
	Row  int
	Col  int
	Text string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %#v", e.Text)
}

type Scanner struct {
	spec      *mlspec.CompiledLexSpec
	kind2Term []string
}

func NewScanner() (*Scanner, error) {
	clspec, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}

	kind2Term := make([]string, len(clspec.KindNames))
	for id, name := range clspec.KindNames {
		switch name.String() {
		case kindIdentifier:
			kind2Term[id] = driver.KindID
		case kindIntConst:
			kind2Term[id] = driver.KindIntConst
		default:
			for _, p := range punctuations {
				if p.kind == name.String() {
					kind2Term[id] = p.text
					break
				}
			}
		}
	}

	return &Scanner{
		spec:      clspec,
		kind2Term: kind2Term,
	}, nil
}

// Scan reads the whole source and returns tokens ending with the end marker. Each identifier except keywords
// is registered to the symbol table.
func (s *Scanner) Scan(src io.Reader, w *symtab.TableWriter) ([]*driver.Token, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(s.spec), src)
	if err != nil {
		return nil, err
	}

	var toks []*driver.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			toks = append(toks, driver.NewEOFToken(tok.Row, tok.Col))
			break
		}
		if tok.Invalid {
			return nil, &InvalidTokenError{
				Row:  tok.Row,
				Col:  tok.Col,
				Text: string(tok.Lexeme),
			}
		}

		if s.spec.KindNames[tok.KindID].String() == kindWhiteSpace {
			continue
		}

		toks = append(toks, s.toToken(tok, w))
	}

	log.Debugf("%v tokens", len(toks))

	return toks, nil
}

func (s *Scanner) toToken(tok *mldriver.Token, w *symtab.TableWriter) *driver.Token {
	text := string(tok.Lexeme)
	switch term := s.kind2Term[tok.KindID]; term {
	case driver.KindID:
		if _, ok := keywords[text]; ok {
			return &driver.Token{
				Kind: text,
				Row:  tok.Row,
				Col:  tok.Col,
			}
		}
		if w != nil {
			w.Add(text)
		}
		return &driver.Token{
			Kind: driver.KindID,
			Text: text,
			Row:  tok.Row,
			Col:  tok.Col,
		}
	case driver.KindIntConst:
		return &driver.Token{
			Kind: driver.KindIntConst,
			Text: text,
			Row:  tok.Row,
			Col:  tok.Col,
		}
	default:
		return &driver.Token{
			Kind: term,
			Row:  tok.Row,
			Col:  tok.Col,
		}
	}
}

// Dump writes tokens one per line in the `(kind,text)` form.
func Dump(w io.Writer, toks []*driver.Token) error {
	for _, tok := range toks {
		_, err := fmt.Fprintf(w, "(%v,%v)\n", tok.Kind, tok.Text)
		if err != nil {
			return err
		}
	}
	return nil
}
