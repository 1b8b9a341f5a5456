// Package i18n wraps the translation bundle used for calendar summaries and
// CLI output. Locale files are embedded so the binary is self-contained.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tunza-app/tunza/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys to localized text for one language.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	Languages []string
}

// New builds the translation bundle from the embedded locale files and
// targets lang, falling back to English for missing messages.
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	log := slog.With(slog.String(config.LogKeyComponent, config.CompI18n))

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return &Translator{bundle: bundle, localizer: goi18n.NewLocalizer(bundle, lang)}
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}
		detected = append(detected, langCode)

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			log.Error(config.ErrLocaleLoad,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		log.Debug(config.MsgLocaleLoaded,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}

	return &Translator{
		bundle:    bundle,
		localizer: goi18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
		Languages: detected,
	}
}

// Msg translates a key without template data. Falls back to the key itself.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data. Falls back to the key itself
// so a missing translation never breaks output.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
