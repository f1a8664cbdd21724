package cards

const (
	Major = "major"
	Minor = "minor"
)

type Card struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Suit        string `json:"suit,omitempty"`
	Rank        string `json:"rank,omitempty"`
	ImagePath   string `json:"image_path"`
	MeaningPath string `json:"meaning_path"`
}

func (c Card) IsMajor() bool {
	return c.Type == Major
}
