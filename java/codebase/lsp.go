package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/stray/config"
	"github.com/dhamidi/stray/java/diagnose"
)

const lsName = "stray"

var lspLog = commonlog.GetLogger("stray.lsp")

type LSPServer struct {
	codebase *Codebase
	cfg      *config.Config
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu   sync.Mutex
	open map[string]bool

	// PollInterval enables the file watcher for files not open in the
	// editor when positive.
	PollInterval time.Duration
	stopWatcher  context.CancelFunc
}

// NewLSPServer creates a language server. A nil cfg loads .stray.yaml from
// the workspace root sent by the client.
func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		version:      version,
		cfg:          cfg,
		open:         make(map[string]bool),
		PollInterval: 2 * time.Second,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCodeAction: ls.textDocumentCodeAction,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	cfg := ls.cfg
	if cfg == nil {
		var err error
		if cfg, err = config.LoadFromDir(rootDir); err != nil {
			lspLog.Warningf("using default configuration: %s", err)
			cfg = config.Default()
		}
	}
	ls.codebase = New(rootDir, WithConfig(cfg))
	lspLog.Infof("workspace root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		lspLog.Errorf("scanning workspace: %s", err)
	}
	for _, f := range ls.codebase.Files() {
		if len(f.Diagnostics) > 0 {
			ls.publish(ctx, f)
		}
	}

	if ls.PollInterval > 0 {
		watchCtx, cancel := context.WithCancel(context.Background())
		ls.stopWatcher = cancel
		w := NewFileWatcher(ls.codebase, ls.PollInterval)
		w.Ignore = ls.isOpen
		w.OnUpdate = func(f *FileInfo) { ls.publish(ctx, f) }
		w.OnRemove = func(path string) { ls.clear(ctx, path) }
		go w.Run(watchCtx)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.stopWatcher != nil {
		ls.stopWatcher()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	ls.clear(ctx, path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *FileInfo
	if params.Text != nil {
		f = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if f, err = ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("rescanning %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, f)
	return nil
}

func (ls *LSPServer) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	return codeActions(params.TextDocument.URI, f, params.Range), nil
}

// codeActions returns the quick fixes of the diagnostics of f that touch
// the requested range.
func codeActions(uri protocol.DocumentUri, f *FileInfo, r protocol.Range) []protocol.CodeAction {
	start := f.Lines.UTF16Offset(int(r.Start.Line), int(r.Start.Character))
	end := f.Lines.UTF16Offset(int(r.End.Line), int(r.End.Character))

	var actions []protocol.CodeAction
	for _, d := range f.Diagnostics {
		if d.End.Offset < start || d.Start.Offset > end {
			continue
		}
		for _, fix := range d.Fixes {
			var edits []protocol.TextEdit
			for _, e := range fix.Edits {
				edits = append(edits, protocol.TextEdit{
					Range:   toProtocolRange(f.Lines, e.Start, e.End),
					NewText: e.NewText,
				})
			}
			kind := protocol.CodeActionKindQuickFix
			actions = append(actions, protocol.CodeAction{
				Title:       fix.Title,
				Kind:        &kind,
				Diagnostics: []protocol.Diagnostic{toProtocolDiagnostic(f.Lines, d)},
				IsPreferred: boolPtr(true),
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits},
				},
			})
		}
	}
	return actions
}

func (ls *LSPServer) publish(ctx *glsp.Context, f *FileInfo) {
	diagnostics := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(f.Lines, d))
	}
	lspLog.Debugf("publishing %d diagnostics for %s", len(diagnostics), f.Path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) clear(ctx *glsp.Context, path string) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func toProtocolDiagnostic(lines *diagnose.LineIndex, d diagnose.Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Severity)
	source := lsName
	return protocol.Diagnostic{
		Range:    toProtocolRange(lines, d.Start.Offset, d.End.Offset),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: string(d.Code)},
		Source:   &source,
		Message:  d.Message,
	}
}

func toProtocolRange(lines *diagnose.LineIndex, start, end int) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(lines, start),
		End:   toProtocolPosition(lines, end),
	}
}

func toProtocolPosition(lines *diagnose.LineIndex, offset int) protocol.Position {
	line, character := lines.UTF16Position(offset)
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

func toProtocolSeverity(s diagnose.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnose.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diagnose.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
