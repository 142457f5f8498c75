package lsp_test

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/mdprogress/pkg/lsp"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

func updateParams(t *testing.T, args ...any) *protocol.ExecuteCommandParams {
	t.Helper()
	params := &protocol.ExecuteCommandParams{Command: lsp.CommandUpdate}
	for _, a := range args {
		raw, err := json.Marshal(a)
		require.NoError(t, err)
		params.Arguments = append(params.Arguments, raw)
	}
	return params
}

func TestExecuteUpdateOnOpenDocument(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t, docURI, "markdown", "Tasks (0/1)\n- [x] a")

	res, err := f.server.ExecuteCommand(f.ctx, updateParams(t, docURI))
	require.NoError(t, err)

	result, ok := res.(*lsp.UpdateResult)
	require.True(t, ok)
	assert.Equal(t, 1, result.Edits)
	assert.NotEmpty(t, result.BatchID)

	edits := f.client.Edits()
	require.Len(t, edits, 1)
	docEdit := onlyDocumentEdit(t, edits[0])
	require.NotNil(t, docEdit.TextDocument.Version)
	assert.Equal(t, int32(1), *docEdit.TextDocument.Version)
	assert.Equal(t, "mdprogress: update checklists", edits[0].Label)
}

func TestExecuteUpdateReadsFromDisk(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, afero.WriteFile(f.fs, "/notes/todo.md", []byte("Todo (/)\n- [ ] a\n- [x] b\n"), 0o644))

	uri := protocol.URIFromPath("/notes/todo.md")
	res, err := f.server.ExecuteCommand(f.ctx, updateParams(t, uri))
	require.NoError(t, err)
	assert.Equal(t, 1, res.(*lsp.UpdateResult).Edits)

	edits := f.client.Edits()
	require.Len(t, edits, 1)
	docEdit := onlyDocumentEdit(t, edits[0])
	assert.Nil(t, docEdit.TextDocument.Version)
	assert.Equal(t, []protocol.TextEdit{edit(0, 0, 8, "Todo (1/2)")}, docEdit.Edits)

	_, stored := f.server.Documents().GetNoFallback(uri)
	assert.False(t, stored)
}

func TestExecuteUpdateNothingToDo(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t, docURI, "markdown", "Tasks (1/1)\n- [x] a")

	res, err := f.server.ExecuteCommand(f.ctx, updateParams(t, docURI))
	require.NoError(t, err)
	assert.Equal(t, &lsp.UpdateResult{}, res)
	assert.Empty(t, f.client.Edits())
}

func TestExecuteUpdateUnhandledDocument(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t, "file:///src/main.go", "go", "Tasks (0/1)\n- [x] a")

	res, err := f.server.ExecuteCommand(f.ctx, updateParams(t, "file:///src/main.go"))
	require.NoError(t, err)
	assert.Equal(t, &lsp.UpdateResult{}, res)
	assert.Empty(t, f.client.Edits())
}

func TestExecuteCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		params  func(t *testing.T) *protocol.ExecuteCommandParams
		wantErr string
	}{
		{
			name: "unknown command",
			params: func(t *testing.T) *protocol.ExecuteCommandParams {
				return &protocol.ExecuteCommandParams{Command: "mdprogress.nothing"}
			},
			wantErr: "unknown command",
		},
		{
			name: "no arguments",
			params: func(t *testing.T) *protocol.ExecuteCommandParams {
				return updateParams(t)
			},
			wantErr: "expects exactly one document uri",
		},
		{
			name: "argument is not a string",
			params: func(t *testing.T) *protocol.ExecuteCommandParams {
				return updateParams(t, 42)
			},
			wantErr: "decoding",
		},
		{
			name: "missing document",
			params: func(t *testing.T) *protocol.ExecuteCommandParams {
				return updateParams(t, "file:///nowhere.md")
			},
			wantErr: "document not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			_, err := f.server.ExecuteCommand(f.ctx, tt.params(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecuteUpdateNestedHeaderEditsAreDisjoint(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t, docURI, "markdown", "Sprint (/)\n- [x] a\n  (/)\n[progress_bar]\n- [ ] b")

	_, err := f.server.ExecuteCommand(f.ctx, updateParams(t, docURI))
	require.NoError(t, err)

	edits := f.client.Edits()
	require.Len(t, edits, 1)
	assert.Equal(t, []protocol.TextEdit{
		edit(0, 0, 10, "Sprint (1/1)"),
		edit(2, 0, 5, "  (0/1)"),
		edit(3, 0, 14, "░░░░░░░░░░ 0%"),
	}, onlyDocumentEdit(t, edits[0]).Edits)
}
