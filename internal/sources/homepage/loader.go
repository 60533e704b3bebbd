// Package homepage imports links from gethomepage dashboard files.
package homepage

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// templateVariable matches {{HOMEPAGE_VAR_...}} and {{HOMEPAGE_FILE_...}}.
var templateVariable = regexp.MustCompile(`\{\{\s*(HOMEPAGE_(?:VAR|FILE)_[A-Za-z0-9_]+)\s*\}\}`)

// Loader reads a services.yaml and a bookmarks.yaml. Either path may be empty.
type Loader struct {
	servicesFile  string
	bookmarksFile string
	mapper        *Mapper
	logger        logger.Logger
	lookupEnv     func(string) (string, bool)
}

// NewLoader creates a new Homepage loader
func NewLoader(servicesFile, bookmarksFile string, log logger.Logger) *Loader {
	return &Loader{
		servicesFile:  servicesFile,
		bookmarksFile: bookmarksFile,
		mapper:        NewMapper(),
		logger:        log,
		lookupEnv:     os.LookupEnv,
	}
}

// Enabled reports whether any file is configured.
func (l *Loader) Enabled() bool {
	return l.servicesFile != "" || l.bookmarksFile != ""
}

// Load returns the services followed by the bookmarks, in file order.
// Links that do not make valid entries are logged and skipped.
func (l *Loader) Load(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []domain.Entry

	if l.servicesFile != "" {
		var services ServicesConfig
		if err := l.readYAML(l.servicesFile, &services); err != nil {
			return nil, fmt.Errorf("failed to load services: %w", err)
		}
		mapped, skipped := l.mapper.MapServices(services)
		l.logSkipped(l.servicesFile, skipped)
		entries = append(entries, mapped...)
	}

	if l.bookmarksFile != "" {
		var bookmarks BookmarksConfig
		if err := l.readYAML(l.bookmarksFile, &bookmarks); err != nil {
			return nil, fmt.Errorf("failed to load bookmarks: %w", err)
		}
		mapped, skipped := l.mapper.MapBookmarks(bookmarks)
		l.logSkipped(l.bookmarksFile, skipped)
		entries = append(entries, mapped...)
	}

	return entries, nil
}

func (l *Loader) readYAML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(l.expandTemplateVariables(data), v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (l *Loader) logSkipped(path string, skipped []error) {
	for _, err := range skipped {
		l.logger.Warn("skipping homepage link", logger.String("file", path), logger.Error(err))
	}
}

// expandTemplateVariables substitutes gethomepage variables from the
// environment. Unset variables become an empty quoted string so that a
// bare {{...}} still parses as YAML.
// Example: href: {{HOMEPAGE_VAR_NAS_URL}} -> href: ""
func (l *Loader) expandTemplateVariables(data []byte) []byte {
	return templateVariable.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(templateVariable.FindSubmatch(match)[1])
		if value, ok := l.lookupEnv(name); ok {
			return []byte(value)
		}
		return []byte(`""`)
	})
}
