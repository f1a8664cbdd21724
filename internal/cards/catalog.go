package cards

import (
	"fmt"
	"strings"
)

var majorNames = []string{
	"FOOL", "MAGICIAN", "HIGH_PRIESTESS", "EMPRESS",
	"EMPEROR", "HIEROPHANT", "LOVERS", "CHARIOT",
	"STRENGTH", "HERMIT", "WHEEL_OF_FORTUNE", "JUSTICE",
	"HANGED_MAN", "DEATH", "TEMPERANCE", "DEVIL",
	"TOWER", "STAR", "MOON", "SUN", "JUDGEMENT", "WORLD",
}

var (
	Suits = []string{"cups", "pentacles", "swords", "wands"}
	Ranks = []string{
		"ACE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN",
		"EIGHT", "NINE", "TEN", "PAGE", "KNIGHT", "QUEEN", "KING",
	}
)

// DeckSize is the number of cards in a full Rider-Waite-Smith deck.
const DeckSize = 78

var catalog = buildCatalog()

// Catalog returns a copy of the full deck in canonical order: major arcana
// first, then each suit from ace to king.
func Catalog() []Card {
	out := make([]Card, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a card by its name, ignoring case.
func Lookup(name string) (Card, bool) {
	for _, c := range catalog {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Card{}, false
}

func buildCatalog() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, name := range majorNames {
		deck = append(deck, Card{
			Type:        Major,
			Name:        name,
			DisplayName: title(strings.ReplaceAll(name, "_", " ")),
			ImagePath:   fmt.Sprintf("assets/images/major/%s.png", name),
			MeaningPath: fmt.Sprintf("assets/meanings/major/%s.docx", name),
		})
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{
				Type:        Minor,
				Suit:        suit,
				Rank:        rank,
				Name:        rank + "_OF_" + strings.ToUpper(suit),
				DisplayName: title(rank) + " of " + title(suit),
				ImagePath:   fmt.Sprintf("assets/images/minor/%s/%s.png", suit, rank),
				MeaningPath: fmt.Sprintf("assets/meanings/minor/%s/%s.docx", suit, rank),
			})
		}
	}
	return deck
}

// title upper-cases the first letter of every word and lower-cases the rest.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		w = strings.ToLower(w)
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
