package domain

// Theme is the UI color scheme. Only two variants exist.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Anything unrecognised is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// Valid reports whether t is one of the known variants.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings are the device-level preferences and onboarding flags.
type Settings struct {
	HasSeenOnboarding       bool  `json:"hasSeenOnboarding"`
	HasCompletedPersonalize bool  `json:"hasCompletedPersonalize"`
	Theme                   Theme `json:"theme"`
	NotificationsEnabled    bool  `json:"notificationsEnabled"`
	DailyQuoteEnabled       bool  `json:"dailyQuoteEnabled"`
}
