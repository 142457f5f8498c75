package lsp

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/emoji"
	"github.com/walteh/mdprogress/pkg/lsp/protocol"
	"github.com/walteh/mdprogress/pkg/position"
)

func (me *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	zerolog.Ctx(ctx).Debug().
		Str("uri", string(params.TextDocument.URI)).
		Str("language_id", string(params.TextDocument.LanguageID)).
		Int32("version", params.TextDocument.Version).
		Msg("document opened")

	me.documents.Store(&Document{
		URI:        params.TextDocument.URI,
		LanguageID: params.TextDocument.LanguageID,
		Version:    params.TextDocument.Version,
		Content:    params.TextDocument.Text,
	})

	return nil
}

// DidChange updates the stored snapshot and then reconciles it: a ":name:" token completed by
// the last change is resolved, every checklist header and bar is synchronized, and everything
// goes back to the editor as one edit.
func (me *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	logger := zerolog.Ctx(ctx).With().
		Str("uri", string(params.TextDocument.URI)).
		Int32("version", params.TextDocument.Version).
		Logger()

	if len(params.ContentChanges) == 0 {
		return nil
	}

	prev, ok := me.documents.GetNoFallback(params.TextDocument.URI)
	if !ok {
		return errors.Errorf("document not found: %s", params.TextDocument.URI)
	}

	content := prev.Content
	for _, change := range params.ContentChanges {
		if change.Range == nil {
			content = change.Text
			continue
		}
		content = replaceContentFromRange(ctx, content, change.Range, change.Text)
	}

	doc := &Document{
		URI:        prev.URI,
		LanguageID: prev.LanguageID,
		Version:    params.TextDocument.Version,
		Content:    content,
	}
	me.documents.Store(doc)

	if !me.handles(doc) {
		logger.Trace().Msg("document not handled, skipping")
		return nil
	}

	replacement := me.resolveLastChange(ctx, doc, params.ContentChanges[len(params.ContentChanges)-1])

	batch := me.planBatch(doc, replacement)
	if batch == nil {
		logger.Trace().Msg("document already up to date")
		return nil
	}

	return me.commit(logger.WithContext(ctx), batch)
}

// resolveLastChange looks for an emoji token on the line where change finished inserting.
func (me *Server) resolveLastChange(ctx context.Context, doc *Document, change protocol.TextDocumentContentChangeEvent) *emoji.Replacement {
	if !me.cfg.EmojiEnabled() || change.Range == nil || !emoji.TriggersResolution(change.Text) {
		return nil
	}

	start := position.Place{Line: int(change.Range.Start.Line), Character: int(change.Range.Start.Character)}
	end := position.After(start, change.Text)

	lines := checklist.Lines(doc.Content)
	if end.Line >= len(lines) {
		return nil
	}

	rep, ok := emoji.Resolve(lines[end.Line], end.Line, me.symbols)
	if !ok {
		return nil
	}

	zerolog.Ctx(ctx).Debug().Int("line", rep.Line).Str("glyph", rep.Text).Msg("emoji token resolved")

	return &rep
}

func (me *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	zerolog.Ctx(ctx).Debug().Str("uri", string(params.TextDocument.URI)).Msg("document closed")

	me.documents.Delete(params.TextDocument.URI)
	return nil
}

func (me *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("uri", string(params.TextDocument.URI)).Msg("document saved")

	if params.Text == nil {
		return nil
	}

	prev, ok := me.documents.GetNoFallback(params.TextDocument.URI)
	if !ok {
		return errors.Errorf("document not found: %s", params.TextDocument.URI)
	}

	if prev.Content != *params.Text {
		logger.Warn().Str("uri", string(params.TextDocument.URI)).Msg("saved text differs from the tracked snapshot, taking the saved text")

		updated := *prev
		updated.Content = *params.Text
		me.documents.Store(&updated)
	}

	return nil
}

func replaceContentFromRange(ctx context.Context, content string, rangez *protocol.Range, text string) string {
	r := position.Range{
		Start: position.Place{Line: int(rangez.Start.Line), Character: int(rangez.Start.Character)},
		End:   position.Place{Line: int(rangez.End.Line), Character: int(rangez.End.Character)},
	}
	if !position.IsValidRange(r) {
		zerolog.Ctx(ctx).Debug().Msg("change range ends before it starts, swapping")
		r.Start, r.End = r.End, r.Start
	}

	startPos := position.NewRawPositionFromLineAndColumn(r.Start.Line, r.Start.Character, "", content)
	endPos := position.NewRawPositionFromLineAndColumn(r.End.Line, r.End.Character, "", content)
	zerolog.Ctx(ctx).Trace().Msgf(`replacing content from %s to %s with %q`, startPos.ID(), endPos.ID(), text)
	return content[:startPos.Offset] + text + content[endPos.Offset:]
}
