package lsp

import (
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/walteh/mdprogress/pkg/lsp/protocol"
)

// Document represents a text document with its metadata
type Document struct {
	URI        protocol.DocumentURI
	LanguageID protocol.LanguageKind
	Version    int32
	Content    string

	// FromDisk is set for documents read from the file system that the editor never
	// opened. Their version means nothing.
	FromDisk bool
}

// DocumentManager handles document operations. Stored documents are never modified, updates
// store a new value.
type DocumentManager struct {
	store *sync.Map // map[string]*Document
	fs    afero.Fs
}

func NewDocumentManager(fs afero.Fs) *DocumentManager {
	return &DocumentManager{
		store: &sync.Map{},
		fs:    fs,
	}
}

// normalizeURI drops the file scheme so "file:///a.md" and "file:/a.md" share a key
func normalizeURI(uri protocol.DocumentURI) string {
	s := strings.TrimPrefix(string(uri), "file://")
	return strings.TrimPrefix(s, "file:")
}

func (m *DocumentManager) GetNoFallback(uri protocol.DocumentURI) (*Document, bool) {
	content, ok := m.store.Load(normalizeURI(uri))
	if !ok {
		return nil, false
	}
	return content.(*Document), true
}

// Get returns the open document, or reads it from the file system when the editor has not
// opened it. Documents read from disk are not stored.
func (m *DocumentManager) Get(uri protocol.DocumentURI) (*Document, bool) {
	if doc, ok := m.GetNoFallback(uri); ok {
		return doc, true
	}

	if m.fs == nil {
		return nil, false
	}

	content, err := afero.ReadFile(m.fs, uri.Path())
	if err != nil {
		return nil, false
	}

	return &Document{
		URI:      uri,
		Content:  string(content),
		FromDisk: true,
	}, true
}

func (m *DocumentManager) Store(doc *Document) {
	m.store.Store(normalizeURI(doc.URI), doc)
}

func (m *DocumentManager) Delete(uri protocol.DocumentURI) {
	m.store.Delete(normalizeURI(uri))
}

// Len counts the open documents.
func (m *DocumentManager) Len() int {
	n := 0
	m.store.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
