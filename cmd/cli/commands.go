package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	boxID    string
	seasonID string
	playerID string
	matchID  string
	limit    string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(delayCmd)
	rootCmd.AddCommand(metricsCmd)

	membersCmd.Flags().StringVar(&boxID, "box", "", "Only list members of this box")

	matchesCmd.Flags().StringVar(&boxID, "box", "", "Filter matches by box")
	matchesCmd.Flags().StringVar(&seasonID, "season", "", "Filter matches by season")
	matchesCmd.Flags().StringVar(&playerID, "player", "", "Filter matches by player")

	standingsCmd.Flags().StringVar(&boxID, "box", "", "The box to rank")
	standingsCmd.Flags().StringVar(&seasonID, "season", "", "Restrict the table to one season")
	standingsCmd.Flags().StringVar(&limit, "limit", "", "Only show the top N rows")
	standingsCmd.MarkFlagRequired("box")

	analyticsCmd.Flags().StringVar(&playerID, "player", "", "The player to profile")
	analyticsCmd.MarkFlagRequired("player")

	for _, action := range []string{"request", "accept", "reject", "cancel"} {
		cmd := newDelayActionCmd(action)
		delayCmd.AddCommand(cmd)
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members", url.Values{"boxID": {boxID}})
	},
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List the seasons in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/seasons", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches, optionally filtered by box, season or player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches", url.Values{
			"boxID":    {boxID},
			"seasonID": {seasonID},
			"playerID": {playerID},
		})
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the ranked table for a box",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings", url.Values{
			"boxID":    {boxID},
			"seasonID": {seasonID},
			"limit":    {limit},
		})
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the analytics snapshot for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/player-analytics", url.Values{"playerID": {playerID}})
	},
}

var delayCmd = &cobra.Command{
	Use:   "delay",
	Short: "Drive a match reschedule negotiation",
}

func newDelayActionCmd(action string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("%s a reschedule on behalf of a player", action),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performGetRequest("/delay/"+action, url.Values{
				"matchID":  {matchID},
				"playerID": {playerID},
			})
		},
	}
	cmd.Flags().StringVar(&matchID, "match", "", "The match to act on")
	cmd.Flags().StringVar(&playerID, "player", "", "The acting player")
	cmd.MarkFlagRequired("match")
	cmd.MarkFlagRequired("player")
	return cmd
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func performGetRequest(endpoint string, params url.Values) error {
	requestURL := host + endpoint
	if params != nil {
		// Drop empty values so the server sees only the flags that were set.
		clean := url.Values{}
		for key, values := range params {
			for _, v := range values {
				if v != "" {
					clean.Add(key, v)
				}
			}
		}
		if encoded := clean.Encode(); encoded != "" {
			requestURL += "?" + encoded
		}
	}
	fmt.Printf("Making request to %s\n", requestURL)

	resp, err := http.Get(requestURL)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
