package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the tracker file name looked up next to the binary
// when no explicit path is given.
const DefaultFileName = "task_doc_tracker.json"

// Format identifies the encoding of a tracker file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the decoder from the file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the tracker at path.
//
// Existence is checked before reading so that a missing file is always
// reported as ErrNotFound naming the path, never as a read or parse error.
func Load(path string) (*Tracker, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat tracker %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("tracker %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tracker %s: %w", path, err)
	}

	return Parse(path, data, FormatForPath(path))
}

// Parse decodes tracker content. path is only used in error messages.
func Parse(path string, data []byte, format Format) (*Tracker, error) {
	unmarshal := json.Unmarshal
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	// Decode twice: once generically for the schema check, once into the
	// typed form. The generic pass keeps "absent" distinct from "empty".
	var doc any
	if err := unmarshal(data, &doc); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if err := validate(path, doc); err != nil {
		return nil, err
	}

	var t Tracker
	if err := unmarshal(data, &t); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if t.Tasks == nil {
		t.Tasks = []Task{}
	}
	if t.DiscrepancySummary == nil {
		t.DiscrepancySummary = []string{}
	}
	return &t, nil
}
