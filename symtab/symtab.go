// Package symtab provides the symbol table shared by the scanner and the semantic actions of a compilation.
//
// A Table has a single owner, the compilation session. Components that declare types receive a TableWriter,
// and components that only need to know which identifiers exist receive a TableReader.
package symtab

import (
	"fmt"
	"io"
)

// Type is a declared type of an identifier.
type Type int

const (
	// TypeNone means an identifier hasn't been declared yet.
	TypeNone Type = iota
	TypeInt
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	default:
		return "-"
	}
}

// Entry is a record of an identifier.
type Entry struct {
	Text string
	Type Type
}

type Table struct {
	text2Entry map[string]*Entry
	entries    []*Entry
}

type TableWriter struct {
	*Table
}

// TableReader doesn't embed Table so that a reader cannot be turned into a writer.
type TableReader struct {
	tab *Table
}

func NewTable() *Table {
	return &Table{
		text2Entry: map[string]*Entry{},
	}
}

func (t *Table) Writer() *TableWriter {
	return &TableWriter{
		Table: t,
	}
}

func (t *Table) Reader() *TableReader {
	return &TableReader{
		tab: t,
	}
}

// Add registers an identifier. Adding an identifier already registered is a no-op, and the existing entry is
// returned.
func (w *TableWriter) Add(text string) *Entry {
	if e, ok := w.text2Entry[text]; ok {
		return e
	}
	e := &Entry{
		Text: text,
	}
	w.text2Entry[text] = e
	w.entries = append(w.entries, e)
	return e
}

func (w *TableWriter) SetType(text string, typ Type) error {
	e, ok := w.text2Entry[text]
	if !ok {
		return fmt.Errorf("an identifier is not registered in the symbol table: %v", text)
	}
	e.Type = typ
	return nil
}

func (r *TableReader) Has(text string) bool {
	_, ok := r.tab.text2Entry[text]
	return ok
}

// Lookup returns a copy of an entry so that readers cannot modify the table.
func (r *TableReader) Lookup(text string) (Entry, bool) {
	e, ok := r.tab.text2Entry[text]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in registration order.
func (r *TableReader) Entries() []Entry {
	es := make([]Entry, len(r.tab.entries))
	for i, e := range r.tab.entries {
		es[i] = *e
	}
	return es
}

func (r *TableReader) Len() int {
	return len(r.tab.entries)
}

// Dump writes all entries in registration order, one `name: type` pair per line.
func Dump(w io.Writer, r *TableReader) error {
	for _, e := range r.tab.entries {
		_, err := fmt.Fprintf(w, "%v: %v\n", e.Text, e.Type)
		if err != nil {
			return err
		}
	}
	return nil
}
