// Package lsp implements a language server that reports lexical and syntax errors of minic documents.
package lsp

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/nihei9/minic/compiler"
	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "minic"

var log = commonlog.GetLogger("minic.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	// mu serializes compilations because document notifications may arrive concurrently.
	mu       sync.Mutex
	compiler *compiler.Compiler
}

func NewServer(version string, c *compiler.Compiler) *Server {
	ls := &Server{
		version:  version,
		compiler: c,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, ls.diagnose(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Errorf("ignored an incremental change of %v", params.TextDocument.URI)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, ls.diagnose(textChange.Text))
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, ls.diagnose(*params.Text))
	return nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	log.Debugf("publishing %v diagnostics for %v", len(diags), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (ls *Server) diagnose(text string) []protocol.Diagnostic {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return Diagnose(ls.compiler, text)
}

// Diagnose compiles a document and converts its lexical or syntax error into a diagnostic. A document compiling
// successfully has no diagnostics. Other errors are logged and not reported to the client.
func Diagnose(c *compiler.Compiler, text string) []protocol.Diagnostic {
	_, err := c.Compile(strings.NewReader(text))
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var synErr *driver.SyntaxError
	var tokErr *lexer.InvalidTokenError
	switch {
	case errors.As(err, &synErr):
		width := 0
		if tok := synErr.Token; tok != nil && !tok.EOF() {
			// Keywords and punctuation have no text because their kinds are their lexemes.
			if tok.Text != "" {
				width = utf8.RuneCountInString(tok.Text)
			} else {
				width = utf8.RuneCountInString(tok.Kind)
			}
		}
		return []protocol.Diagnostic{newDiagnostic(synErr.Row, synErr.Col, width, err.Error())}
	case errors.As(err, &tokErr):
		return []protocol.Diagnostic{newDiagnostic(tokErr.Row, tokErr.Col, utf8.RuneCountInString(tokErr.Text), err.Error())}
	}

	log.Errorf("failed to compile a document: %v", err)
	return []protocol.Diagnostic{}
}

func newDiagnostic(row, col, width int, msg string) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(row),
				Character: protocol.UInteger(col),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(row),
				Character: protocol.UInteger(col + width),
			},
		},
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Source:   &source,
		Message:  msg,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
