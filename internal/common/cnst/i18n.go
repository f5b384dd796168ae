package cnst

const (
	LangEN      = "en"
	LangRU      = "ru"
	LangDefault = LangEN
)

const (
	// XLang is the request header and gin context key holding the response language
	XLang = "X-Lang"
)
