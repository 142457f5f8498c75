package protocol

import (
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

// Path returns the file system path of a file URI, or the URI itself when it is not one.
func (uri DocumentURI) Path() string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != fileScheme {
		return string(uri)
	}
	path := u.Path
	// file:///C:/dir on windows
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// IsFile reports whether uri uses the file scheme.
func (uri DocumentURI) IsFile() bool {
	return strings.HasPrefix(string(uri), fileScheme+":")
}

// URIFromPath returns the file URI for an absolute path.
func URIFromPath(path string) DocumentURI {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{Scheme: fileScheme, Path: path}
	return DocumentURI(u.String())
}
