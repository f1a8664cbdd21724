package cards

import "strings"

type FilterOptions struct {
	Arcana    string   // "major", "minor" or empty for both
	Suits     []string
	FreeWords string
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

func Filter(cards []Card, opt FilterOptions) []Card {
	out := []Card{}
	for _, c := range cards {
		if opt.Arcana != "" && !strings.EqualFold(c.Type, opt.Arcana) {
			continue
		}
		if len(opt.Suits) > 0 {
			if c.IsMajor() || !containsAny([]string{c.Suit}, opt.Suits) {
				continue
			}
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(c.DisplayName), k) &&
					!strings.Contains(strings.ToLower(c.Name), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
