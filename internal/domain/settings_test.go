package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme(""))
	assert.Equal(t, ThemeLight, ParseTheme("Dark"))
}

func TestTheme_Valid(t *testing.T) {
	assert.True(t, ThemeLight.Valid())
	assert.True(t, ThemeDark.Valid())
	assert.False(t, Theme("sepia").Valid())
}

func TestProfile_Merge(t *testing.T) {
	str := func(v string) *string { return &v }

	stored := Profile{Name: "Abebe", Mood: "calm", Bio: "hi"}
	patch := ProfilePatch{Mood: str("happy"), Religion: str("none")}

	got := stored.Merge(patch)

	assert.Equal(t, Profile{Name: "Abebe", Mood: "happy", Bio: "hi", Religion: "none"}, got)
	assert.Equal(t, "calm", stored.Mood, "merge must not mutate the receiver")

	cleared := got.Merge(ProfilePatch{Bio: str("")})
	assert.Empty(t, cleared.Bio)
	assert.Equal(t, "Abebe", cleared.Name)
}

func TestNewReminder(t *testing.T) {
	r := NewReminder(&Quote{Text: "Be here now", Author: "Ram Dass"}, 8, 0)

	assert.Equal(t, "DailyDose Today", r.Title)
	assert.Equal(t, "\"Be here now\"\n Ram Dass", r.Body)
	assert.Equal(t, 8, r.Hour)
	assert.Equal(t, 0, r.Minute)
	assert.True(t, r.Repeats)
	assert.Equal(t, map[string]string{"type": "daily-quote"}, r.Data)
}

func TestNewReminder_Fallbacks(t *testing.T) {
	r := NewReminder(nil, 8, 0)
	assert.Equal(t, "\"Stay positive and keep going!\"\n DailyDose", r.Body)

	r = NewReminder(&Quote{Text: "Only text"}, 9, 30)
	assert.Equal(t, "\"Only text\"\n DailyDose", r.Body)
	assert.Equal(t, 9, r.Hour)
	assert.Equal(t, 30, r.Minute)
}
