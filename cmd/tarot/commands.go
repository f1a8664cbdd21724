package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/youruser/tarotapp/internal/client"
)

var (
	apiURL     string
	sessionID  string
	readingCtx string
	timeout    time.Duration
	api        *client.Client

	rootCmd = &cobra.Command{
		Use:           "tarot",
		Short:         "Shuffle, draw and reset a tarot deck served by the reading API",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			api = client.New(apiURL, sessionID)
			api.HTTP.Timeout = timeout
		},
	}

	shuffleCmd = &cobra.Command{
		Use:   "shuffle",
		Short: "Restore all 78 cards and shuffle them",
		Args:  cobra.NoArgs,
		RunE:  runShuffle,
	}

	drawCmd = &cobra.Command{
		Use:   "draw",
		Short: "Draw the top card and read it for a context",
		Args:  cobra.NoArgs,
		RunE:  runDraw,
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Put every card back in catalog order",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is up and how many cards are left",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
)

func init() {
	defaultURL := os.Getenv("TAROT_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "base URL of the reading API (env TAROT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", os.Getenv("TAROT_SESSION"), "deck session id (X-Session-ID)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	drawCmd.Flags().StringVarP(&readingCtx, "context", "c", "Soul", "reading context, e.g. Love, Career, Health")

	rootCmd.AddCommand(shuffleCmd, drawCmd, resetCmd, statusCmd)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func runShuffle(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	out := cmd.OutOrStdout()
	s, err := api.Shuffle(ctx)
	if err != nil {
		printFailure(out, err)
		return err
	}
	printShuffled(out, s)
	return nil
}

func runDraw(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	out := cmd.OutOrStdout()
	r, err := api.Draw(ctx, readingCtx)
	if err != nil {
		printDrawFailure(out, err)
		return err
	}
	printReading(out, r)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	out := cmd.OutOrStdout()
	s, err := api.Reset(ctx)
	if err != nil {
		printFailure(out, err)
		return err
	}
	printReset(out, s)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	out := cmd.OutOrStdout()
	s, err := api.Status(ctx)
	if err != nil {
		printFailure(out, err)
		return err
	}
	printStatus(out, s)
	return nil
}
