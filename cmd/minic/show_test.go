package main

import (
	"strings"
	"testing"

	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/spec"
)

func TestWriteReport(t *testing.T) {
	cgram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	r := newReport(cgram)
	if len(r.States) != cgram.Syntactic.StateCount {
		t.Fatalf("unexpected state count; want: %v, got: %v", cgram.Syntactic.StateCount, len(r.States))
	}

	accepts := 0
	for _, s := range r.States {
		for _, a := range s.Actions {
			if a.kind == "accept" {
				accepts++
				if len(a.terms) != 1 || a.terms[0] != "<eof>" {
					t.Fatalf("an accept action must be on <eof>; got: %v", a.terms)
				}
			}
		}
	}
	if accepts != 1 {
		t.Fatalf("unexpected accept action count; want: 1, got: %v", accepts)
	}

	var b strings.Builder
	err = writeReport(&b, r)
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{
		"# minic\n",
		"   2 P -> S_list\n",
		"  16 B -> int_const\n",
		"## State 0\n",
		"accept      on <eof>\n",
	} {
		if !strings.Contains(out, s) {
			t.Fatalf("a report must contain %q;\n%v", s, out)
		}
	}
}

func TestWriteReport_Compressed(t *testing.T) {
	cgram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	var plain strings.Builder
	err = writeReport(&plain, newReport(cgram))
	if err != nil {
		t.Fatal(err)
	}

	syn := *cgram.Syntactic
	err = syn.Compress()
	if err != nil {
		t.Fatal(err)
	}
	var compressed strings.Builder
	err = writeReport(&compressed, newReport(&spec.CompiledGrammar{
		Name:      cgram.Name,
		Syntactic: &syn,
	}))
	if err != nil {
		t.Fatal(err)
	}

	if compressed.String() != plain.String() {
		t.Fatalf("a report of compressed tables must be the same as the plain one;\nwant:\n%v\ngot:\n%v", plain.String(), compressed.String())
	}
}
