// Package locale holds the UI string tables and the active language. Lookup
// is key-path based with template substitution and falls back to the default
// language; language switches are persisted and broadcast synchronously to
// subscribers.
package locale

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

var templateToken = regexp.MustCompile(`\{([^}]+)}`)

// Preference persists the active language across sessions. Implementations
// must tolerate failure: a preference that cannot be read or written is
// silently ignored, never fatal.
type Preference interface {
	Load() (string, error)
	Save(lang string) error
}

// FilePreference stores the language code in a single small file, the port of
// the browser's local-storage entry.
type FilePreference struct {
	Path string
}

func (f FilePreference) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (f FilePreference) Save(lang string) error {
	return os.WriteFile(f.Path, []byte(lang+"\n"), 0o644)
}

// Store owns the active language and exposes translation lookup.
type Store struct {
	mu      sync.Mutex
	current string
	pref    Preference
	subs    []func(lang string)

	tags    []language.Tag
	langs   []string
	matcher language.Matcher
}

// NewStore creates a Store starting from the persisted language when one is
// stored and valid, else the default. pref may be nil for a memory-only store.
func NewStore(pref Preference) *Store {
	s := &Store{current: DefaultLanguage, pref: pref}

	// The default language leads so it wins ties in Accept-Language matching.
	s.langs = append(s.langs, DefaultLanguage)
	s.tags = append(s.tags, language.Make(DefaultLanguage))
	names := make([]string, 0, len(translations))
	for name := range translations {
		if name != DefaultLanguage {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		s.langs = append(s.langs, name)
		s.tags = append(s.tags, language.Make(name))
	}
	s.matcher = language.NewMatcher(s.tags)

	if pref != nil {
		if stored, err := pref.Load(); err == nil {
			if _, ok := translations[stored]; ok {
				s.current = stored
			}
		}
	}
	return s
}

// Language returns the active language code.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Languages lists the available language codes, default first.
func (s *Store) Languages() []string {
	out := make([]string, len(s.langs))
	copy(out, s.langs)
	return out
}

// SetLanguage switches the active language, persists it, and notifies
// subscribers. Unknown codes fall back to the default language. The broadcast
// fires even when the language did not change, so relabel-only refreshes can
// be forced.
func (s *Store) SetLanguage(lang string) {
	if _, ok := translations[lang]; !ok {
		lang = DefaultLanguage
	}

	s.mu.Lock()
	changed := lang != s.current
	s.current = lang
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if changed && s.pref != nil {
		_ = s.pref.Save(lang) // persistence is best-effort
	}
	for _, fn := range subs {
		fn(lang)
	}
}

// Subscribe registers a callback invoked synchronously on every language
// switch broadcast.
func (s *Store) Subscribe(fn func(lang string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Match negotiates a language from an Accept-Language header value.
func (s *Store) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return s.Language()
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return s.Language()
	}
	_, index, _ := s.matcher.Match(desired...)
	return s.langs[index]
}

// T resolves a dot-path key in the active language, falling back to the
// default language and finally to the key itself. Replacements substitute
// {token} markers; unknown tokens are left in place.
func (s *Store) T(key string, replacements map[string]any) string {
	return s.translate(s.Language(), key, replacements)
}

// Strings returns the full table for a language, or the default table for
// unknown codes.
func (s *Store) Strings(lang string) Table {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[DefaultLanguage]
}

// Locale returns the BCP 47 locale tag of the active language, used for
// locale-aware formatting and collation.
func (s *Store) Locale() string {
	if v, ok := resolveKey(s.Language(), "_locale"); ok {
		return v
	}
	if v, ok := resolveKey(DefaultLanguage, "_locale"); ok {
		return v
	}
	return "en-GB"
}

// DatasetLabel translates a dataset source key into a display label, trying
// the active language, the default language, the caller's fallback, and the
// generic fallback label in that order.
func (s *Store) DatasetLabel(source, fallback string) string {
	key := "datasetLabels." + source
	if v, ok := resolveKey(s.Language(), key); ok {
		return v
	}
	if v, ok := resolveKey(DefaultLanguage, key); ok {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return s.T("datasetLabels.fallback", nil)
}

func (s *Store) translate(lang, key string, replacements map[string]any) string {
	value, ok := resolveKey(lang, key)
	if !ok {
		value, ok = resolveKey(DefaultLanguage, key)
	}
	if !ok {
		return key
	}
	return formatTemplate(value, replacements)
}

func resolveKey(lang, key string) (string, bool) {
	node := any(translations[lang])
	for _, segment := range strings.Split(key, ".") {
		table, ok := node.(Table)
		if !ok {
			return "", false
		}
		node, ok = table[segment]
		if !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}

func formatTemplate(template string, replacements map[string]any) string {
	if len(replacements) == 0 {
		return template
	}
	return templateToken.ReplaceAllStringFunc(template, func(match string) string {
		token := strings.TrimSpace(match[1 : len(match)-1])
		if v, ok := replacements[token]; ok {
			return toString(v)
		}
		return match
	})
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(v)
	}
}
