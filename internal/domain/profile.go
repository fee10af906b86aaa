package domain

// Profile holds the personal data collected by the personalize wizard and
// the profile screen. Every field is free-form text.
type Profile struct {
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	Birthday   string `json:"birthday,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Mood       string `json:"mood,omitempty"`
	LifeAspect string `json:"lifeAspect,omitempty"`
	Theme      string `json:"theme,omitempty"`
	Frequency  string `json:"frequency,omitempty"`
	ImageURI   string `json:"imageUri,omitempty"`
}

// ProfilePatch is a partial profile update. A nil field keeps the stored
// value; a non-nil field replaces it, even with the empty string.
type ProfilePatch struct {
	Name       *string
	Username   *string
	Birthday   *string
	Gender     *string
	Bio        *string
	Religion   *string
	Mood       *string
	LifeAspect *string
	Theme      *string
	Frequency  *string
	ImageURI   *string
}

// Merge returns a copy of p with every set field of patch applied.
func (p Profile) Merge(patch ProfilePatch) Profile {
	pick := func(old string, incoming *string) string {
		if incoming != nil {
			return *incoming
		}
		return old
	}

	return Profile{
		Name:       pick(p.Name, patch.Name),
		Username:   pick(p.Username, patch.Username),
		Birthday:   pick(p.Birthday, patch.Birthday),
		Gender:     pick(p.Gender, patch.Gender),
		Bio:        pick(p.Bio, patch.Bio),
		Religion:   pick(p.Religion, patch.Religion),
		Mood:       pick(p.Mood, patch.Mood),
		LifeAspect: pick(p.LifeAspect, patch.LifeAspect),
		Theme:      pick(p.Theme, patch.Theme),
		Frequency:  pick(p.Frequency, patch.Frequency),
		ImageURI:   pick(p.ImageURI, patch.ImageURI),
	}
}
