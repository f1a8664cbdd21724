package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/youruser/tarotapp/internal/client"
)

var (
	okColor      = color.New(color.FgGreen)
	errColor     = color.New(color.FgRed)
	cardColor    = color.New(color.FgMagenta, color.Bold)
	headingColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

func printShuffled(w io.Writer, s client.DeckState) {
	okColor.Fprintf(w, "✅ Deck shuffled! %d cards ready for reading.\n", s.CardsRemaining)
}

func printReset(w io.Writer, s client.DeckState) {
	infoColor.Fprintf(w, "🔄 Deck reset! %d cards available.\n", s.CardsRemaining)
}

func printStatus(w io.Writer, s client.DeckState) {
	okColor.Fprintf(w, "🟢 Backend %s: %d of %d cards remaining.\n", s.Status, s.CardsRemaining, s.TotalCards)
}

func printReading(w io.Writer, r client.Reading) {
	cardColor.Fprintln(w, r.Card.DisplayName)
	headingColor.Fprintf(w, "📖 %s Reading\n", r.Context)
	fmt.Fprintln(w, r.Meaning)
	if v := r.Metadata["Yes/No"]; v != "" {
		fmt.Fprintf(w, "Yes/No: %s\n", v)
	}
	if v := r.Metadata["+/-"]; v != "" {
		fmt.Fprintf(w, "Energy: %s\n", v)
	}
	infoColor.Fprintf(w, "🎴 %d cards remaining in deck.\n", r.CardsRemaining)
}

// printFailure reports a failed call the way the reading page does for
// network problems.
func printFailure(w io.Writer, err error) {
	errColor.Fprintf(w, "❌ Error: %s. Make sure the backend server is running.\n", err)
}

// printDrawFailure shows server-side draw errors verbatim.
func printDrawFailure(w io.Writer, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		errColor.Fprintf(w, "❌ %s\n", apiErr.Message)
		return
	}
	printFailure(w, err)
}
