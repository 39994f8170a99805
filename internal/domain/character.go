package domain

// Character is one entry of the character catalog. Tier ids of the gamification
// state refer to Character.ID.
type Character struct {
	ID          string
	Name        string
	ImageURL    string
	Gender      string
	Level       int
	Description string
	IsDefault   bool
	IsActive    bool
}

// ValidGender reports whether g names a character track.
func ValidGender(g string) bool {
	return g == TrackMale || g == TrackFemale
}
