// Package statics holds the static files bundled into the go-cuillere binary
package statics

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

//go:embed static/*
var embeddedStaticFS embed.FS

// StaticFile is one bundled asset
type StaticFile struct {
	Name    string
	Content []byte
	Mime    string
}

// files is filled once at init and never written again
var files = mustLoad(embeddedStaticFS)

// Get returns the static file registered under name
func Get(name string) (*StaticFile, bool) {
	f, ok := files[name]
	return f, ok
}

// Names returns the registered file names, sorted
func Names() []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustLoad(fsys fs.FS) map[string]*StaticFile {
	loaded, err := load(fsys)
	if err != nil {
		panic("Failed to load embedded static files: " + err.Error())
	}
	return loaded
}

// load reads every regular file below static/ into a lookup table keyed by base name
func load(fsys fs.FS) (map[string]*StaticFile, error) {
	loaded := make(map[string]*StaticFile)
	err := fs.WalkDir(fsys, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := path.Base(p)
		loaded[name] = &StaticFile{
			Name:    name,
			Content: content,
			Mime:    getContentType(name, content),
		}
		return nil
	})
	return loaded, err
}

// getContentType returns the MIME type for a file: text formats by extension
// since sniffing cannot tell css from plain text, everything else by content
func getContentType(name string, content []byte) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".html":
		return "text/html; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	return mimetype.Detect(content).String()
}
