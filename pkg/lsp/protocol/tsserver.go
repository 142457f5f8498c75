// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/creachadair/jrpc2/handler"
)

// Server is the set of client-to-server methods this language server answers.
type Server interface {
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#initialize
	Initialize(context.Context, *ParamInitialize) (*InitializeResult, error)
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#initialized
	Initialized(context.Context, *InitializedParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#shutdown
	Shutdown(context.Context) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#exit
	Exit(context.Context) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#setTrace
	SetTrace(context.Context, *SetTraceParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#textDocument_didOpen
	DidOpen(context.Context, *DidOpenTextDocumentParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#textDocument_didChange
	DidChange(context.Context, *DidChangeTextDocumentParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#textDocument_didClose
	DidClose(context.Context, *DidCloseTextDocumentParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#textDocument_didSave
	DidSave(context.Context, *DidSaveTextDocumentParams) error
	// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification#workspace_executeCommand
	ExecuteCommand(context.Context, *ExecuteCommandParams) (any, error)
}

func buildServerDispatchMap(server Server) handler.Map {
	return handler.Map{
		"$/cancelRequest":          createEmptyResultHandler(ignoreCancel),
		"$/setTrace":               createEmptyResultHandler(server.SetTrace),
		"exit":                     createEmptyHandler(server.Exit),
		"initialize":               createHandler(server.Initialize),
		"initialized":              createEmptyResultHandler(server.Initialized),
		"shutdown":                 createEmptyHandler(server.Shutdown),
		"textDocument/didChange":   createEmptyResultHandler(server.DidChange),
		"textDocument/didClose":    createEmptyResultHandler(server.DidClose),
		"textDocument/didOpen":     createEmptyResultHandler(server.DidOpen),
		"textDocument/didSave":     createEmptyResultHandler(server.DidSave),
		"workspace/executeCommand": createHandler(server.ExecuteCommand),
	}
}

// requests run one at a time and are never interrupted
func ignoreCancel(context.Context, *CancelParams) error {
	return nil
}
