package lsp

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/emoji"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
	"github.com/walteh/mdprogress/pkg/position"
)

const editLabel = "mdprogress: update checklists"

// EditBatch is every edit of one pass, computed against one version of one document. It is
// committed whole or not at all.
type EditBatch struct {
	ID       string
	URI      protocol.DocumentURI
	Version  int32
	FromDisk bool
	Edits    []protocol.TextEdit

	// Folded is set when the emoji replacement was merged into a rewritten header line.
	Folded bool
}

// planBatch synchronizes the snapshot of doc with rep applied and turns the result into editor
// edits against the unmodified text. It returns nil when nothing needs to change.
func (me *Server) planBatch(doc *Document, rep *emoji.Replacement) *EditBatch {
	original := checklist.Lines(doc.Content)

	snapshot := make([]string, len(original))
	copy(snapshot, original)
	if rep != nil {
		snapshot[rep.Line] = rep.Apply(snapshot[rep.Line])
	}

	batch := &EditBatch{
		ID:       uuid.NewString(),
		URI:      doc.URI,
		Version:  doc.Version,
		FromDisk: doc.FromDisk,
	}

	for _, le := range me.synchronizer.SynchronizeLines(snapshot) {
		if rep != nil && rep.Line == le.Line {
			batch.Folded = true
		}
		batch.Edits = append(batch.Edits, protocol.TextEdit{
			Range:   lineRange(le.Line, original[le.Line]),
			NewText: le.Text,
		})
	}

	if rep != nil && !batch.Folded {
		batch.Edits = append(batch.Edits, protocol.TextEdit{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(rep.Line), Character: uint32(rep.StartUTF16)},
				End:   protocol.Position{Line: uint32(rep.Line), Character: uint32(rep.EndUTF16)},
			},
			NewText: rep.Text,
		})
	}

	if len(batch.Edits) == 0 {
		return nil
	}

	sort.SliceStable(batch.Edits, func(i, j int) bool {
		a, b := batch.Edits[i].Range.Start, batch.Edits[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})

	return batch
}

// lineRange covers the text of one line, line ending excluded.
func lineRange(line int, text string) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: 0},
		End:   protocol.Position{Line: uint32(line), Character: uint32(position.UTF16Len(text))},
	}
}

// commit sends batch as a single versioned workspace edit. A batch computed against a version
// the server no longer holds is dropped.
func (me *Server) commit(ctx context.Context, batch *EditBatch) error {
	logger := zerolog.Ctx(ctx).With().Str("batch_id", batch.ID).Int("edits", len(batch.Edits)).Logger()

	var version *int32
	if !batch.FromDisk {
		current, ok := me.documents.GetNoFallback(batch.URI)
		if !ok || current.Version != batch.Version {
			logger.Debug().Int32("batch_version", batch.Version).Msg("document moved on, dropping stale edit batch")
			return nil
		}
		v := batch.Version
		version = &v
	}

	if me.callbackClient == nil {
		logger.Warn().Msg("no callback client available, edit batch not sent")
		return nil
	}

	res, err := me.callbackClient.ApplyEdit(ctx, &protocol.ApplyWorkspaceEditParams{
		Label: editLabel,
		Edit: protocol.WorkspaceEdit{
			DocumentChanges: []protocol.TextDocumentEdit{
				{
					TextDocument: protocol.OptionalVersionedTextDocumentIdentifier{
						Version:                version,
						TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: batch.URI},
					},
					Edits: batch.Edits,
				},
			},
		},
	})
	if err != nil {
		return errors.Errorf("applying edit batch %s: %w", batch.ID, err)
	}

	if res == nil || !res.Applied {
		reason := ""
		if res != nil {
			reason = res.FailureReason
		}
		logger.Debug().Str("reason", reason).Msg("client rejected edit batch")
		return nil
	}

	logger.Debug().Bool("folded", batch.Folded).Msg("edit batch applied")
	return nil
}
