package lsp

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

// CommandUpdate runs a full checklist pass over the document whose URI is the only argument.
const CommandUpdate = "mdprogress.update"

// UpdateResult is the reply to CommandUpdate.
type UpdateResult struct {
	BatchID string `json:"batchId,omitempty"`
	Edits   int    `json:"edits"`
}

func (me *Server) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case CommandUpdate:
		if len(params.Arguments) != 1 {
			return nil, errors.Errorf("%s expects exactly one document uri, got %d arguments", CommandUpdate, len(params.Arguments))
		}
		var uri protocol.DocumentURI
		if err := json.Unmarshal(params.Arguments[0], &uri); err != nil {
			return nil, errors.Errorf("decoding %s argument: %w", CommandUpdate, err)
		}
		return me.update(ctx, uri)
	default:
		return nil, errors.Errorf("unknown command %q", params.Command)
	}
}

func (me *Server) update(ctx context.Context, uri protocol.DocumentURI) (*UpdateResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("uri", string(uri)).Logger()

	doc, ok := me.documents.Get(uri)
	if !ok {
		return nil, errors.Errorf("document not found: %s", uri)
	}

	if !me.handles(doc) {
		logger.Debug().Str("language_id", string(doc.LanguageID)).Msg("update requested for a document that is not handled")
		return &UpdateResult{}, nil
	}

	batch := me.planBatch(doc, nil)
	if batch == nil {
		return &UpdateResult{}, nil
	}

	if err := me.commit(logger.WithContext(ctx), batch); err != nil {
		return nil, err
	}

	return &UpdateResult{BatchID: batch.ID, Edits: len(batch.Edits)}, nil
}
