package lsp

import (
	"context"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/config"
	"github.com/walteh/mdprogress/pkg/emoji"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

const (
	serverName         = "mdprogress"
	emptySymbolsNotice = "mdprogress: the emoji symbol table is empty, :name: tokens will not be resolved"
)

type Options struct {
	Config  *config.Config
	Symbols *emoji.Table
	Fs      afero.Fs
	Version string

	// LogToClient forwards every log line to the editor as window/logMessage.
	LogToClient bool
}

// Server represents an LSP server instance
type Server struct {
	documents    *DocumentManager
	synchronizer *checklist.Synchronizer
	symbols      *emoji.Table
	cfg          *config.Config

	// Server identification
	id          string
	version     string
	logToClient bool

	mu                 sync.Mutex
	clientCapabilities protocol.ClientCapabilities
	initialized        bool
	shutdown           bool

	// LSP client for edits and log lines
	callbackClient protocol.Client
	exit           func()
}

var _ protocol.Server = (*Server)(nil)

func NewServer(ctx context.Context, opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	me := &Server{
		id:           xid.New().String(),
		version:      opts.Version,
		logToClient:  opts.LogToClient,
		documents:    NewDocumentManager(fs),
		synchronizer: checklist.NewSynchronizer(cfg.BarStyle()),
		symbols:      opts.Symbols,
		cfg:          cfg,
	}

	zerolog.Ctx(ctx).Debug().
		Str("server_id", me.id).
		Int("symbols", me.symbols.Len()).
		Strs("languages", cfg.Languages).
		Strs("include", cfg.Include).
		Msg("language server created")

	return me
}

// BuildServerInstance wires the server into a jrpc2 server. Edits and forwarded log lines go
// back through the returned instance, and the exit notification stops it.
func (me *Server) BuildServerInstance(ctx context.Context, opts *jrpc2.ServerOptions) *protocol.ServerInstance {
	if opts == nil {
		opts = &jrpc2.ServerOptions{}
	}

	var instance *protocol.ServerInstance

	if opts.NewContext == nil {
		opts.NewContext = func() context.Context {
			if me.logToClient && instance != nil {
				return protocol.ApplyClientToZerolog(ctx, instance.Callback())
			}
			return ctx
		}
	}

	instance = protocol.NewServerInstance(ctx, me, opts)

	me.SetCallbackClient(instance.Callback())
	me.exit = instance.Stop

	return instance
}

func (me *Server) SetCallbackClient(client protocol.Client) {
	me.callbackClient = client
}

func (me *Server) Documents() *DocumentManager {
	return me.documents
}

func (me *Server) ID() string {
	return me.id
}

func (me *Server) Initialize(ctx context.Context, params *protocol.ParamInitialize) (*protocol.InitializeResult, error) {
	logger := zerolog.Ctx(ctx)

	me.mu.Lock()
	me.clientCapabilities = params.Capabilities
	me.mu.Unlock()

	event := logger.Debug().Str("root_uri", string(params.RootURI))
	if params.ClientInfo != nil {
		event = event.Str("client", params.ClientInfo.Name).Str("client_version", params.ClientInfo.Version)
	}
	event.Msg("initializing server")

	if !params.Capabilities.Workspace.ApplyEdit {
		logger.Warn().Msg("client does not advertise workspace/applyEdit, checklist updates may be rejected")
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.Incremental,
				Save:      &protocol.SaveOptions{IncludeText: true},
			},
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{CommandUpdate},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: me.version,
		},
	}, nil
}

func (me *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	me.mu.Lock()
	me.initialized = true
	me.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("server_id", me.id).Msg("server initialized")

	if me.cfg.EmojiEnabled() && me.symbols.Len() == 0 && me.callbackClient != nil {
		err := me.callbackClient.ShowMessage(ctx, &protocol.ShowMessageParams{
			Type:    protocol.Warning,
			Message: emptySymbolsNotice,
		})
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("showing empty symbol table notice")
		}
	}

	return nil
}

func (me *Server) Shutdown(ctx context.Context) error {
	me.mu.Lock()
	me.shutdown = true
	me.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Int("open_documents", me.documents.Len()).Msg("shutdown requested")
	return nil
}

func (me *Server) Exit(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Msg("exit requested")

	if me.exit != nil {
		// Stop must not run on a handler goroutine
		go me.exit()
	}
	return nil
}

func (me *Server) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	zerolog.Ctx(ctx).Trace().Str("value", params.Value).Msg("trace level change ignored")
	return nil
}

// handles reports whether doc takes part in checklist and emoji processing.
func (me *Server) handles(doc *Document) bool {
	if doc.LanguageID != "" && me.cfg.HandlesLanguage(string(doc.LanguageID)) {
		return true
	}
	return me.cfg.Matches(doc.URI.Path())
}
