// Package format turns packed sheet geometry into serialisable metadata and
// writes it as JSON or TOML.
package format

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// Options carries per-sprite data a format may need, indexed by sprite id.
type Options struct {
	Names   []string
	Offsets []model.TrimOffset
}

// Format encodes one sheet. The returned value is ready for Write.
type Format interface {
	Name() string
	Encode(width, height int, anchors []model.SpriteAnchor, options Options) (any, error)
}

// Encoding names.
const (
	EncodingJSON = "json"
	EncodingTOML = "toml"
)

var registry = map[string]Format{
	AmethystFormat{}.Name():      AmethystFormat{},
	AmethystNamedFormat{}.Name(): AmethystNamedFormat{},
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unknown format %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension for an encoding, including the dot.
func Extension(encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case EncodingJSON:
		return ".json", nil
	case EncodingTOML:
		return ".toml", nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unknown encoding %q (available: json, toml)", encoding)
}

// Write serialises data to w. Pretty indents JSON; TOML is always written
// one key per line and pretty only controls table indentation.
func Write(w io.Writer, data any, encoding string, pretty bool) error {
	switch strings.ToLower(encoding) {
	case EncodingJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(data); err != nil {
			return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write json metadata")
		}
		return nil
	case EncodingTOML:
		enc := toml.NewEncoder(w)
		if !pretty {
			enc.Indent = ""
		}
		if err := enc.Encode(data); err != nil {
			return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write toml metadata")
		}
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidFormat, "unknown encoding %q (available: json, toml)", encoding)
}
