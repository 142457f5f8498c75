package lsp_test

import (
	"context"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/lsp"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

func TestServeOverJSONRPC(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel).WithContext(context.Background())

	server := lsp.NewServer(ctx, lsp.Options{
		Symbols: testSymbols(),
		Fs:      afero.NewMemMapFs(),
		Version: "test",
	})
	instance := server.BuildServerInstance(ctx, &jrpc2.ServerOptions{
		RPCLog:      &protocol.ZerologRPCLogger{},
		Concurrency: 1,
	})

	clientCh, serverCh := channel.Direct()
	instance.Start(serverCh)

	applied := make(chan protocol.ApplyWorkspaceEditParams, 4)
	client := jrpc2.NewClient(clientCh, &jrpc2.ClientOptions{
		OnCallback: func(_ context.Context, req *jrpc2.Request) (any, error) {
			if req.Method() != "workspace/applyEdit" {
				return nil, errors.Errorf("unexpected callback %s", req.Method())
			}
			var params protocol.ApplyWorkspaceEditParams
			if err := req.UnmarshalParams(&params); err != nil {
				return nil, err
			}
			applied <- params
			return &protocol.ApplyWorkspaceEditResult{Applied: true}, nil
		},
	})
	defer client.Close()

	var init protocol.InitializeResult
	require.NoError(t, client.CallResult(ctx, "initialize", &protocol.ParamInitialize{
		RootURI: "file:///notes",
		Capabilities: protocol.ClientCapabilities{
			Workspace: protocol.WorkspaceClientCapabilities{ApplyEdit: true},
		},
	}, &init))
	assert.Equal(t, "mdprogress", init.ServerInfo.Name)

	require.NoError(t, client.Notify(ctx, "initialized", &protocol.InitializedParams{}))

	require.NoError(t, client.Notify(ctx, "textDocument/didOpen", &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: "markdown",
			Version:    1,
			Text:       "Tasks (0/1)\n- [ ] ship :tada",
		},
	}))

	require.NoError(t, client.Notify(ctx, "textDocument/didChange", &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			Version:                2,
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			replace(1, 3, 4, "x"),
			insert(1, 16, ":"),
		},
	}))

	select {
	case params := <-applied:
		docEdit := onlyDocumentEdit(t, &params)
		require.NotNil(t, docEdit.TextDocument.Version)
		assert.Equal(t, int32(2), *docEdit.TextDocument.Version)
		assert.Equal(t, []protocol.TextEdit{
			edit(0, 0, 11, "Tasks (1/1)"),
			edit(1, 11, 17, "🎉"),
		}, docEdit.Edits)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workspace/applyEdit")
	}

	_, err := client.Call(ctx, "shutdown", nil)
	require.NoError(t, err)
	require.NoError(t, client.Notify(ctx, "exit", nil))

	done := make(chan struct{})
	go func() {
		_ = instance.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}
