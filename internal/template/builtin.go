package template

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"fmt"
	"sync"
)

//go:embed builtin/*.xml
var builtinFS embed.FS

// Strategy names accepted by the filler and the built-in template.
const (
	StrategyContentControl = "contentcontrol"
	StrategyPlaceholder    = "placeholder"
)

// packageParts maps zip entry names to embedded files, in write order.
var packageParts = []struct {
	name string
	file string
}{
	{"[Content_Types].xml", "builtin/content_types.xml"},
	{"_rels/.rels", "builtin/package_rels.xml"},
	{"word/document.xml", ""},
	{"word/_rels/document.xml.rels", "builtin/document_rels.xml"},
}

// BuiltinSource serves the Form 11 template compiled into the binary.
type BuiltinSource struct {
	strategy string

	once sync.Once
	data []byte
	err  error
}

// NewBuiltinSource returns the built-in template marked up for strategy.
func NewBuiltinSource(strategy string) (*BuiltinSource, error) {
	switch strategy {
	case StrategyContentControl, StrategyPlaceholder:
	default:
		return nil, fmt.Errorf("unknown template strategy: %s", strategy)
	}
	return &BuiltinSource{strategy: strategy}, nil
}

func (s *BuiltinSource) Load(_ context.Context) ([]byte, error) {
	s.once.Do(func() {
		s.data, s.err = buildPackage(s.strategy)
	})
	if s.err != nil {
		return nil, s.err
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *BuiltinSource) Describe() string {
	return "builtin:" + s.strategy
}

func buildPackage(strategy string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range packageParts {
		file := part.file
		if file == "" {
			file = "builtin/" + strategy + "_document.xml"
		}
		data, err := builtinFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", file, err)
		}
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing template package: %w", err)
	}
	return buf.Bytes(), nil
}
