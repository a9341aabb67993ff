package storage

import "fmt"

const (
	themeKey     = "theme"
	DefaultTheme = "dark"
)

// Settings holds the small user preferences that share the key-value store
// with the history record.
type Settings struct {
	kv KeyValue
}

func NewSettings(kv KeyValue) *Settings {
	return &Settings{kv: kv}
}

// Theme returns the persisted theme preference, falling back to the default
// when absent or unreadable.
func (s *Settings) Theme() string {
	value, ok, err := s.kv.Get(themeKey)
	if err != nil || !ok {
		return DefaultTheme
	}
	return value
}

func (s *Settings) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("unknown theme: %s", theme)
	}
	return s.kv.Set(themeKey, theme)
}
