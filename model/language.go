package model

type LanguageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
	RTL  bool   `json:"rtl,omitempty"`
}

// Languages is the static catalog of summary languages, sorted by display
// name. English is the default.
var Languages = []LanguageOption{
	{Code: "ar", Name: "Arabic", RTL: true},
	{Code: "zh-CN", Name: "Chinese (Simplified)"},
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "hi", Name: "Hindi"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "es", Name: "Spanish"},
}

func DefaultLanguage() LanguageOption {
	if lang, ok := FindLanguage("English"); ok {
		return lang
	}
	return Languages[0]
}

func FindLanguage(name string) (LanguageOption, bool) {
	for _, lang := range Languages {
		if lang.Name == name {
			return lang, true
		}
	}
	return LanguageOption{}, false
}
