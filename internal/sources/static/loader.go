// Package static loads the website catalog from a YAML or JSON file.
package static

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// ErrNoEntries is returned for an empty catalog file.
var ErrNoEntries = errors.New("catalog file is empty")

// placeholder matches {{SITEHUB_VAR_NAME}} references.
var placeholder = regexp.MustCompile(`\{\{\s*(SITEHUB_VAR_[A-Za-z0-9_]+)\s*\}\}`)

// Loader reads a catalog file and maps it to entries.
type Loader struct {
	filePath  string
	mapper    *Mapper
	logger    logger.Logger
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string, log logger.Logger) *Loader {
	return &Loader{
		filePath:  filePath,
		mapper:    NewMapper(),
		logger:    log,
		lookupEnv: os.LookupEnv,
	}
}

// Path returns the catalog file path
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads, validates and maps the catalog file. Entries rejected by
// the mapper are logged and skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := l.Parse()
	if err != nil {
		return nil, err
	}

	entries, skipped := l.mapper.MapWebsites(file)
	for _, err := range skipped {
		l.logger.Warn("skipping catalog entry", logger.String("file", l.filePath), logger.Error(err))
	}

	return entries, nil
}

// Parse reads and validates the catalog file without mapping it.
func (l *Loader) Parse() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(l.expandPlaceholders(data))
}

// Decode validates data against the catalog schema and decodes it.
// YAML and JSON are both accepted.
func Decode(data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, ErrNoEntries
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if doc == nil {
		return File{}, ErrNoEntries
	}
	if err := validate(doc); err != nil {
		return File{}, fmt.Errorf("invalid catalog: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return file, nil
}

// Encode writes file as YAML, the format Decode reads back.
func Encode(file File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// expandPlaceholders substitutes {{SITEHUB_VAR_...}} from the environment.
// Unset variables expand to an empty string.
// Example: url: https://{{SITEHUB_VAR_NAS_HOST}}/ -> url: https://nas.lan/
func (l *Loader) expandPlaceholders(data []byte) []byte {
	return placeholder.ReplaceAllFunc(data, func(match []byte) []byte {
		name := placeholder.FindSubmatch(match)[1]
		value, ok := l.lookupEnv(string(name))
		if !ok {
			l.logger.Warn("catalog placeholder not set", logger.String("variable", string(name)))
			return nil
		}
		return []byte(value)
	})
}
