package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"timeline/internal/domain"
	"timeline/internal/eventbus"
)

// ErrUnsupportedFormat is returned when a source is not JSON, TOML or YAML
var ErrUnsupportedFormat = errors.New("unsupported event source format")

// DefaultTimeout bounds a load when none is configured
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a remote source is read
const maxBody = 8 << 20

// Format is an event file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Result is a loaded and validated event list in source order
type Result struct {
	Location string
	Format   Format
	Events   []*domain.Event
	Skipped  int
	Warnings []string // one entry per skipped record
}

// Loader reads timeline events from a file or URL
type Loader interface {
	Load(ctx context.Context, location string) (*Result, error)
}

// loader is the concrete implementation
type loader struct {
	bus     eventbus.EventBus
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader creates a loader. bus and logger may be nil.
func NewLoader(bus eventbus.EventBus, logger *slog.Logger, timeout time.Duration) Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &loader{
		bus:     bus,
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Load reads location and publishes EventsLoaded or EventsLoadFailed
func (l *loader) Load(ctx context.Context, location string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.load(ctx, location)
	if err != nil {
		l.logger.Error("load events", "location", location, "err", err)
		l.publish(eventbus.EventsLoadFailedEvent{Location: location, Err: err})
		return nil, err
	}
	l.logger.Info("events loaded", "location", location, "format", res.Format, "count", len(res.Events), "skipped", res.Skipped)
	l.publish(eventbus.EventsLoadedEvent{Location: location, Events: res.Events, Skipped: res.Skipped})
	return res, nil
}

func (l *loader) publish(e eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}

func (l *loader) load(ctx context.Context, location string) (*Result, error) {
	var (
		data        []byte
		contentType string
		err         error
	)
	if IsRemote(location) {
		data, contentType, err = l.fetch(ctx, location)
	} else {
		data, err = readFile(ctx, location)
	}
	if err != nil {
		return nil, err
	}

	format, err := DetectFormat(location, contentType)
	if err != nil {
		return nil, err
	}
	res, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	for _, w := range res.Warnings {
		l.logger.Warn("event record skipped", "location", location, "reason", w)
	}
	res.Location = location
	return res, nil
}

// IsRemote reports whether location is an http(s) URL
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (l *loader) fetch(ctx context.Context, location string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/toml, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch %s: %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func readFile(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}
	return data, nil
}

// DetectFormat picks the encoding from the content type when one is
// given, otherwise from the extension of location
func DetectFormat(location, contentType string) (Format, error) {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch mediaType {
			case "application/json", "text/json":
				return FormatJSON, nil
			case "application/toml", "text/toml":
				return FormatTOML, nil
			case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
				return FormatYAML, nil
			}
		}
	}

	p := location
	if u, err := url.Parse(location); err == nil && IsRemote(location) {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", location, ErrUnsupportedFormat)
}

// record is one event as written in a source file. Year may be a number
// or a string such as "1662" or "66000000 BCE".
type record struct {
	ID          string      `json:"id" toml:"id" yaml:"id"`
	Year        interface{} `json:"year" toml:"year" yaml:"year"`
	Title       string      `json:"title" toml:"title" yaml:"title"`
	Description string      `json:"description" toml:"description" yaml:"description"`
	ImageURL    string      `json:"imageURL" toml:"imageURL" yaml:"imageURL"`
	Category    string      `json:"category" toml:"category" yaml:"category"`
	Location    string      `json:"location" toml:"location" yaml:"location"`
	Cause       string      `json:"cause" toml:"cause" yaml:"cause"`
}

// document is the wrapped form {"events": [...]}; TOML always uses it
type document struct {
	Events []record `json:"events" toml:"events" yaml:"events"`
}

// Parse decodes data and validates the records. Records without a title
// or with a repeated ID are skipped. A missing ID is derived from the title,
// or from the record's position when the title has nothing to slug.
func Parse(data []byte, format Format) (*Result, error) {
	records, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	out := &Result{Format: format}
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			out.skip("record %d has no title", i)
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = domain.Slug(title)
		}
		if id == "" {
			id = fmt.Sprintf("event-%d", i+1)
		}
		if _, dup := seen[id]; dup {
			out.skip("record %d duplicates id %q", i, id)
			continue
		}
		year, err := parseYear(r.Year)
		if err != nil {
			out.skip("record %d (%s): %v", i, id, err)
			continue
		}
		seen[id] = struct{}{}
		out.Events = append(out.Events, &domain.Event{
			ID:          id,
			Year:        year,
			Title:       title,
			Description: strings.TrimSpace(r.Description),
			ImageURL:    strings.TrimSpace(r.ImageURL),
			Category:    strings.TrimSpace(r.Category),
			Location:    strings.TrimSpace(r.Location),
			Cause:       strings.TrimSpace(r.Cause),
		})
	}
	return out, nil
}

func (r *Result) skip(format string, args ...interface{}) {
	r.Skipped++
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func decode(data []byte, format Format) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	switch format {
	case FormatJSON:
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var records []record
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, err
			}
			return records, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Events, nil
	case FormatTOML:
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Events, nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.SequenceNode {
			var records []record
			if err := root.Decode(&records); err != nil {
				return nil, err
			}
			return records, nil
		}
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Events, nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

func parseYear(v interface{}) (int, error) {
	switch y := v.(type) {
	case int:
		return y, nil
	case int64:
		return int(y), nil
	case float64:
		return int(y), nil
	case string:
		s := strings.TrimSpace(y)
		bce := false
		if upper := strings.ToUpper(s); strings.HasSuffix(upper, "BCE") || strings.HasSuffix(upper, "BC") {
			bce = true
			s = strings.TrimSpace(strings.TrimRight(s, "BCEbce"))
		}
		s = strings.ReplaceAll(s, ",", "")
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid year %q", y)
		}
		if bce {
			n = -n
		}
		return n, nil
	case nil:
		return 0, errors.New("missing year")
	}
	return 0, fmt.Errorf("invalid year %v", v)
}
