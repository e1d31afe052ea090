package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [compiled grammar file path]",
		Short: "Print parsing tables in a readable format",
		Example: `  minic show
  minic show minic.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var cgram *spec.CompiledGrammar
	var err error
	if len(args) > 0 {
		cgram, err = readCompiledGrammar(args[0])
		if err != nil {
			return fmt.Errorf("Cannot read a compiled grammar: %w", err)
		}
	} else {
		cgram, err = grammar.Default()
		if err != nil {
			return err
		}
	}

	return writeReport(os.Stdout, newReport(cgram))
}

type reportAction struct {
	kind   string
	target int
	// terms are terminal names sharing the same action.
	terms []string
}

type reportGoTo struct {
	state   int
	nonTerm string
}

type reportState struct {
	Number  int
	Actions []*reportAction
	GoTos   []*reportGoTo
}

type report struct {
	Name        string
	Terminals   []string
	Productions []*spec.Production
	States      []*reportState
}

// newReport decodes the parsing tables into per-state actions. Actions are ordered by their first terminal, and
// terminals sharing an action are listed together.
func newReport(cgram *spec.CompiledGrammar) *report {
	s := cgram.Syntactic
	r := &report{
		Name:        cgram.Name,
		Terminals:   s.Terminals,
		Productions: s.Productions,
	}
	for state := 0; state < s.StateCount; state++ {
		st := &reportState{
			Number: state,
		}
		acts := map[int]*reportAction{}
		var keys []int
		for term := 1; term < s.TerminalCount; term++ {
			e := s.ActionEntry(state, term)
			if e == 0 {
				continue
			}
			act, ok := acts[e]
			if !ok {
				switch {
				case e < 0:
					act = &reportAction{kind: "shift", target: -e}
				case e == s.StartProduction:
					act = &reportAction{kind: "accept"}
				default:
					act = &reportAction{kind: "reduce", target: e}
				}
				acts[e] = act
				keys = append(keys, e)
			}
			act.terms = append(act.terms, s.Terminals[term])
		}
		for _, k := range keys {
			st.Actions = append(st.Actions, acts[k])
		}
		for nonTerm := 1; nonTerm < s.NonTerminalCount; nonTerm++ {
			next := s.GoToEntry(state, nonTerm)
			if next == 0 {
				continue
			}
			st.GoTos = append(st.GoTos, &reportGoTo{
				state:   next,
				nonTerm: s.NonTerminals[nonTerm],
			})
		}
		sort.SliceStable(st.GoTos, func(i, j int) bool {
			return st.GoTos[i].state < st.GoTos[j].state
		})
		r.States = append(r.States, st)
	}
	return r
}

const reportTemplate = `# {{ .Name }}

# Terminals

{{ range $i, $t := .Terminals -}}
{{ if gt $i 0 }}{{ printTerminal $i $t }}
{{ end -}}
{{ end }}
# Productions

{{ range slice .Productions 1 -}}
{{ printProduction . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Actions -}}
{{ printAction . }}
{{ end -}}
{{ range .GoTos -}}
{{ printGoTo . }}
{{ end -}}
{{ end }}`

func writeReport(w io.Writer, r *report) error {
	fns := template.FuncMap{
		"printTerminal": func(num int, name string) string {
			return fmt.Sprintf("%4v %v", num, name)
		},
		"printProduction": func(prod *spec.Production) string {
			return fmt.Sprintf("%4v %v", prod.Num, prod)
		},
		"printAction": func(act *reportAction) string {
			terms := strings.Join(act.terms, ", ")
			switch act.kind {
			case "accept":
				return fmt.Sprintf("accept      on %v", terms)
			default:
				return fmt.Sprintf("%-6v %4v on %v", act.kind, act.target, terms)
			}
		},
		"printGoTo": func(g *reportGoTo) string {
			return fmt.Sprintf("goto   %4v on %v", g.state, g.nonTerm)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, r)
	if err != nil {
		return err
	}

	return nil
}
