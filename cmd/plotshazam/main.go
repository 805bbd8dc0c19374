// Command plotshazam is a terminal client for the identification
// service: submit a plot, inspect the recorded history, or health-check
// a running server.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kdimtricp/plotshazam/internal/client"
	"github.com/kdimtricp/plotshazam/internal/config"
	"github.com/kdimtricp/plotshazam/internal/database"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "plotshazam",
	Short: "Identify movies from plot descriptions",
	Long: `plotshazam talks to a running identification server. Give it a plot
description and it prints the most likely movie with a confidence gauge.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("server") {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		serverURL = cfg.BaseURL
		return nil
	},
}

var identifyCmd = &cobra.Command{
	Use:   "identify <plot description>",
	Short: "Identify a movie from a plot description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plot := strings.Join(args, " ")

		c := client.New(serverURL)
		if err := c.Submit(cmd.Context(), plot); err != nil {
			return err
		}

		if msg := c.ErrorMessage(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}

		result, ok := c.Result()
		if !ok {
			return fmt.Errorf("no result")
		}

		filled, _, _ := c.GaugeParts()
		fmt.Printf("Movie:      %s\n", result.MovieName)
		fmt.Printf("Released:   %s\n", result.ReleaseDate)
		fmt.Printf("Confidence: %.0f%%\n", filled)
		if result.Rationale != "" {
			fmt.Printf("Rationale:  %s\n", result.Rationale)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			fmt.Println()
			c.CopyResult(client.WriterClipboard{W: os.Stdout})
			fmt.Println()
		}

		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent identifications from the server log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")

		db, err := database.NewDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		repo := database.NewHistoryRepository(db)
		ctx := context.Background()

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Total identifications: %d\n\n", count)

		entries, err := repo.ListRecent(ctx, limit)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			fmt.Printf("[%s] %s (%s) — %.0f%%\n",
				entry.CreatedAt.Format("Jan 2 15:04"),
				entry.Result.MovieName,
				entry.Result.ReleaseDate,
				entry.Result.Confidence*100)
			fmt.Printf("    plot: %s\n", truncate(entry.Plot, 100))
		}

		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Health-check the identification server",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/ping")
		if err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("%d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the identification server")

	identifyCmd.Flags().Bool("json", false, "also print the result as pretty-printed JSON")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
