package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT(t *testing.T) {
	s := NewStore(nil)

	t.Run("default language lookup", func(t *testing.T) {
		assert.Equal(t, "热力图", s.T("controls.heat", nil))
	})

	t.Run("active language lookup", func(t *testing.T) {
		s.SetLanguage("en")
		defer s.SetLanguage(DefaultLanguage)
		assert.Equal(t, "Heatmap", s.T("controls.heat", nil))
	})

	t.Run("missing key returns the key", func(t *testing.T) {
		assert.Equal(t, "popup.doesNotExist", s.T("popup.doesNotExist", nil))
	})

	t.Run("template substitution", func(t *testing.T) {
		s.SetLanguage("en")
		defer s.SetLanguage(DefaultLanguage)
		got := s.T("summary", map[string]any{"label": "Local JSON", "filtered": 3, "total": 10})
		assert.Equal(t, "Local JSON · Showing 3 / 10", got)
	})

	t.Run("unknown token left in place", func(t *testing.T) {
		s.SetLanguage("en")
		defer s.SetLanguage(DefaultLanguage)
		got := s.T("summaryInitial", map[string]any{"label": "X"})
		assert.Equal(t, "X · Total {total} incidents", got)
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("unknown code falls back to default", func(t *testing.T) {
		s := NewStore(nil)
		s.SetLanguage("fr")
		assert.Equal(t, DefaultLanguage, s.Language())
	})

	t.Run("broadcast fires even without a change", func(t *testing.T) {
		s := NewStore(nil)
		var calls []string
		s.Subscribe(func(lang string) { calls = append(calls, lang) })

		s.SetLanguage("en")
		s.SetLanguage("en")

		assert.Equal(t, []string{"en", "en"}, calls)
	})
}

func TestPreferencePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang")
	pref := FilePreference{Path: path}

	s := NewStore(pref)
	assert.Equal(t, DefaultLanguage, s.Language())

	s.SetLanguage("en")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "en\n", string(b))

	// A fresh store restores the persisted language.
	s2 := NewStore(pref)
	assert.Equal(t, "en", s2.Language())
}

func TestPreferenceInvalidValueIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang")
	require.NoError(t, os.WriteFile(path, []byte("klingon\n"), 0o644))

	s := NewStore(FilePreference{Path: path})
	assert.Equal(t, DefaultLanguage, s.Language())
}

func TestMatch(t *testing.T) {
	s := NewStore(nil)

	assert.Equal(t, "en", s.Match("en-US,en;q=0.9"))
	assert.Equal(t, "zh-Hans", s.Match("zh-CN,zh;q=0.8"))
	assert.Equal(t, s.Language(), s.Match(""))
	assert.Equal(t, s.Language(), s.Match(";;;"))
}

func TestLocale(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, "zh-CN", s.Locale())
	s.SetLanguage("en")
	assert.Equal(t, "en-GB", s.Locale())
}

func TestDatasetLabel(t *testing.T) {
	s := NewStore(nil)
	s.SetLanguage("en")

	assert.Equal(t, "Local JSON (./data/incidents.json)", s.DatasetLabel("local-json", ""))
	assert.Equal(t, "custom feed", s.DatasetLabel("mystery-source", "custom feed"))
	assert.Equal(t, "Data source", s.DatasetLabel("mystery-source", ""))
}

func TestStrings(t *testing.T) {
	s := NewStore(nil)
	table := s.Strings("en")
	assert.Equal(t, "Open Street Arena Map", table["documentTitle"])

	// Unknown language falls back to the default table.
	fallback := s.Strings("fr")
	assert.Equal(t, "Open Street Arena 地图", fallback["documentTitle"])
}
