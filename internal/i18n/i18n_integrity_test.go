package i18n_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/i18n"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in every locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyEvtReminder,
		config.TKeyEvtVaccine,
		config.TKeyEvtVaccineOne,
		config.TKeySnapshotAge,
		config.TKeySnapshotStage,
		config.TKeySnapshotWeek,
		config.TKeySnapshotTip,
		config.TKeySnapshotNoRem,
		config.TKeySnapshotRemHdr,
		config.TKeySnapshotLogHdr,
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile("locales/active." + lang + ".json")
			require.NoError(t, err, "Must load locale file")

			var jsonMap map[string]interface{}
			err = json.Unmarshal(content, &jsonMap)
			require.NoError(t, err, "JSON must be valid")

			for _, key := range keysToCheck {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				found := false
				for _, key := range keysToCheck {
					if key == jsonKey {
						found = true
						break
					}
				}
				if !found {
					t.Logf("Warning: Key '%s' exists in JSON but is not defined in config.go", jsonKey)
				}
			}
		})
	}
}

// TestTranslator_Fallbacks verifies a missing key falls back to itself and
// an unknown language falls back to English.
func TestTranslator_Fallbacks(t *testing.T) {
	tr := i18n.New("sw")
	assert.Equal(t, "Hakuna vikumbusho vijavyo.", tr.Msg(config.TKeySnapshotNoRem))
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))

	unknown := i18n.New("fr")
	assert.Equal(t, "No upcoming reminders.", unknown.Msg(config.TKeySnapshotNoRem))
}

// TestTranslator_TemplateData verifies template expansion.
func TestTranslator_TemplateData(t *testing.T) {
	tr := i18n.New("en")
	got := tr.MsgData(config.TKeyEvtVaccine, map[string]any{"Name": "Pentavalent", "Dose": 2})
	assert.Equal(t, "Vaccine: Pentavalent (dose 2)", got)
}

// TestTranslator_DetectsLanguages verifies both embedded locales load.
func TestTranslator_DetectsLanguages(t *testing.T) {
	tr := i18n.New(config.DefaultLanguage)
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages)
}
