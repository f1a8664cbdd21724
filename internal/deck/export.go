package deck

import (
	"fmt"
	"strings"
)

// ExportText renders the remaining deck, top card first.
func ExportText(name string, d *Deck) string {
	order := d.Order()
	lines := make([]string, 0, len(order)+1)
	if name != "" {
		lines = append(lines, "# "+name)
	}
	lines = append(lines, fmt.Sprintf("%d/%d cards", len(order), d.Total()))
	for i := len(order) - 1; i >= 0; i-- {
		lines = append(lines, order[i])
	}
	return strings.Join(lines, "\n")
}
