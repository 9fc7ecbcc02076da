package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the decoder used for a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks a format from the file extension; anything that is not
// .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads and parses a catalog file from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	cf, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return cf, nil
}

// Decode parses a catalog document from r and checks it with Validate.
// Unknown keys are rejected in both formats. Every error wraps ErrInvalid.
func Decode(r io.Reader, format Format) (*File, error) {
	var cf File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, invalid(fmt.Errorf("decode json: %w", err))
		}
		if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
			return nil, invalid(errors.New("decode json: trailing content"))
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, invalid(errors.New("decode yaml: empty document"))
			}
			return nil, invalid(fmt.Errorf("decode yaml: %w", err))
		}
	}
	if err := cf.Validate(); err != nil {
		return nil, invalid(err)
	}
	return &cf, nil
}

// Validate checks the restaurant list. Malformed menu entries are not an
// error here; the verifier skips them.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(f.Restaurants))
	for i, r := range f.Restaurants {
		id := strings.ToLower(strings.TrimSpace(r.ID))
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("restaurants[%d]: missing id", i))
			continue
		case strings.TrimSpace(r.Name) == "":
			errs = append(errs, fmt.Errorf("restaurants[%d] %q: missing name", i, r.ID))
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("restaurants[%d]: duplicate id %q", i, r.ID))
		}
		seen[id] = struct{}{}
	}
	return errors.Join(errs...)
}

// Malformed returns the entries in items that cannot be sold.
func Malformed(items []Entry) []Entry {
	return where(items, func(e Entry) bool { return !e.Sellable() })
}
