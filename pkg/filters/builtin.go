package filters

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/model"
)

// Built-in filter names.
const (
	Trim         = "trim"
	Lower        = "lower"
	Upper        = "upper"
	Title        = "title"
	Slug         = "slug"
	StripHTML    = "strip_html"
	SanitizeHTML = "sanitize_html"
	UUID         = "uuid"
	NanoID       = "nanoid"
)

// NanoIDAlphabet and NanoIDLength configure identifiers minted by the nanoid
// filter.
var (
	NanoIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	NanoIDLength   = 12
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry

	stripPolicy    = bluemonday.StrictPolicy()
	sanitizePolicy = bluemonday.UGCPolicy()
)

// Default returns the shared registry preloaded with the built-in filters.
// Callers may register additional filters on it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewBuiltins()
	})
	return defaultRegistry
}

// NewBuiltins returns a fresh registry holding only the built-in filters.
func NewBuiltins() *Registry {
	r := NewRegistry()
	r.MustRegister(Trim, stringFilter(strings.TrimSpace))
	r.MustRegister(Lower, stringFilter(strings.ToLower))
	r.MustRegister(Upper, stringFilter(strings.ToUpper))
	r.MustRegister(Title, stringFilter(func(s string) string {
		return cases.Title(language.Und).String(s)
	}))
	r.MustRegister(Slug, stringFilter(Slugify))
	r.MustRegister(StripHTML, stringFilter(func(s string) string {
		return strings.TrimSpace(stripPolicy.Sanitize(s))
	}))
	r.MustRegister(SanitizeHTML, stringFilter(sanitizePolicy.Sanitize))
	r.MustRegister(UUID, generateWhenEmpty(func() (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}))
	r.MustRegister(NanoID, generateWhenEmpty(func() (string, error) {
		return nanoid.Generate(NanoIDAlphabet, NanoIDLength)
	}))
	return r
}

// stringFilter lifts fn into a filter. Non-string values pass through.
func stringFilter(fn func(string) string) definition.TransformFunc {
	return func(value any, _ *model.Instance) (any, error) {
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		return fn(s), nil
	}
}

// generateWhenEmpty mints an identifier when the value is nil or a blank
// string and keeps any other value.
func generateWhenEmpty(gen func() (string, error)) definition.TransformFunc {
	return func(value any, _ *model.Instance) (any, error) {
		if value != nil {
			if s, ok := value.(string); !ok || strings.TrimSpace(s) != "" {
				return value, nil
			}
		}
		id, err := gen()
		if err != nil {
			return nil, fmt.Errorf("filters: generate id: %w", err)
		}
		return id, nil
	}
}

// Slugify lowercases s, folds accented letters to ASCII and joins words with
// hyphens.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
