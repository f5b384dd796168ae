package errorx

import (
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// ErrorTranslator provides internationalized error messages
type ErrorTranslator struct {
	translator *i18n.I18n
}

// NewErrorTranslator creates a new error translator
func NewErrorTranslator(translator *i18n.I18n) *ErrorTranslator {
	return &ErrorTranslator{
		translator: translator,
	}
}

// TranslateError returns a copy of err with Message and details.fields
// rendered in lang. Without a translator the English texts are kept.
func (t *ErrorTranslator) TranslateError(err *APIError, lang string) *APIError {
	out := err.Clone()
	if t == nil || t.translator == nil {
		if len(out.Fields) > 0 {
			fields := make(map[string]string, len(out.Fields))
			for name, fe := range out.Fields {
				fields[name] = fe.MessageID
			}
			out.WithDetail("fields", fields)
		}
		return out
	}

	if out.MessageID != "" {
		out.Message = t.translator.Translate(out.MessageID, lang, out.MessageData)
	}

	if len(out.Fields) > 0 {
		fields := make(map[string]string, len(out.Fields))
		for name, fe := range out.Fields {
			fields[name] = t.translator.Translate(fe.MessageID, lang, fe.Data)
		}
		out.WithDetail("fields", fields)
	}
	return out
}
