package i18n

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// supported lists the language codes the service answers in
var supported = []string{cnst.LangEN, cnst.LangRU}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang string
}

// NewI18n creates a translator with the built-in English messages registered.
// Unsupported defaults fall back to English.
func NewI18n(defaultLang string) *I18n {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	msgs := make([]*i18n.Message, 0, len(defaultMessages))
	for id, other := range defaultMessages {
		msgs = append(msgs, &i18n.Message{ID: id, Other: other})
	}
	_ = bundle.AddMessages(language.English, msgs...)

	return &I18n{
		bundle:      bundle,
		defaultLang: NormalizeLang(defaultLang, cnst.LangDefault),
	}
}

// DefaultLang returns the language used when a request names none
func (i *I18n) DefaultLang() string {
	return i.defaultLang
}

// LoadTranslations loads every *.toml file in dir. File names carry the
// language tag, e.g. ru.toml.
func (i *I18n) LoadTranslations(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		if _, err := i.bundle.LoadMessageFile(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// AddMessages registers messages for lang at runtime
func (i *I18n) AddMessages(lang string, messages map[string]string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return err
	}
	msgs := make([]*i18n.Message, 0, len(messages))
	for id, other := range messages {
		msgs = append(msgs, &i18n.Message{ID: id, Other: other})
	}
	return i.bundle.AddMessages(tag, msgs...)
}

// Translate returns a localized string for the given message ID and language.
// The message ID itself is returned when no translation exists.
func (i *I18n) Translate(msgID string, lang string, data map[string]any) string {
	localizer := i18n.NewLocalizer(i.bundle, lang, i.defaultLang)

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		lc.TemplateData = data
	}

	msg, err := localizer.Localize(lc)
	if err != nil && msg == "" {
		return msgID
	}
	return msg
}

// TranslateContext translates using the language stored on the gin context
func (i *I18n) TranslateContext(c *gin.Context, msgID string, data map[string]any) string {
	return i.Translate(msgID, i.LangFromContext(c), data)
}

// LangFromContext returns the request language set by the language middleware
func (i *I18n) LangFromContext(c *gin.Context) string {
	if c != nil {
		if lang := c.GetString(cnst.XLang); lang != "" {
			return lang
		}
	}
	return i.defaultLang
}

// LanguageFromRequest picks the X-Lang header first, then the first
// Accept-Language entry.
func LanguageFromRequest(r *http.Request, fallback string) string {
	if lang := r.Header.Get(cnst.XLang); lang != "" {
		return NormalizeLang(lang, fallback)
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		first := strings.TrimSpace(strings.Split(strings.Split(accept, ",")[0], ";")[0])
		return NormalizeLang(first, fallback)
	}

	return fallback
}

// NormalizeLang reduces a language tag to a supported base code
func NormalizeLang(lang string, fallback string) string {
	code := strings.ToLower(strings.Split(strings.TrimSpace(lang), "-")[0])
	for _, s := range supported {
		if code == s {
			return code
		}
	}
	return fallback
}
