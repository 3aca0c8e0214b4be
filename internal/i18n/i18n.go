// Package i18n holds the static locale table: key to string per locale,
// loaded once from embedded JSON. Used for mail subjects/bodies and the few
// translated envelope messages.
package i18n

import (
	"embed"
	"encoding/json"
	"io/fs"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLocale = "en"

var tables = map[string]map[string]string{}

func init() {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		log.Error().Err(err).Msg("Failed to read embedded locales")
		return
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			log.Error().Err(err).Str("locale", name).Msg("Failed to read locale file")
			continue
		}
		table := map[string]string{}
		if err := json.Unmarshal(data, &table); err != nil {
			log.Error().Err(err).Str("locale", name).Msg("Failed to parse locale file")
			continue
		}
		tables[name] = table
	}
}

// T looks up a key in the given locale, falling back to the default locale
// and finally to the key itself.
func T(locale, key string) string {
	if table, ok := tables[locale]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if table, ok := tables[DefaultLocale]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	return key
}

// Locales returns the loaded locale codes.
func Locales() []string {
	out := make([]string, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	return out
}
