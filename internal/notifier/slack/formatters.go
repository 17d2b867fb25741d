package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/tibaulingg/boxleague/internal/analytics"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
)

// formatDelayRequested creates the Slack message for a new reschedule request using Block Kit.
func (s *Notifier) formatDelayRequested(match *league.MatchRecord, requesterID string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⏳ Reschedule requested", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	opponentID, _ := match.OpponentOf(requesterID)
	detailsText := fmt.Sprintf("%s asked to move their match against %s.", requesterID, opponentID)
	if match.ScheduledAt != nil {
		detailsText += fmt.Sprintf("\nCurrently scheduled for %s.", formatUnixTime(*match.ScheduledAt))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s can accept or reject the request.", opponentID), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatDelayResolved creates the Slack message for a resolved reschedule request.
func (s *Notifier) formatDelayResolved(match *league.MatchRecord, state delay.State) slack.Message {
	blocks := make([]slack.Block, 0)

	var header, details string
	switch state {
	case delay.StateAccepted:
		header = "✅ Reschedule accepted"
		details = "The match will be moved to a new slot."
	case delay.StateRejected:
		header = "❌ Reschedule rejected"
		details = "The match stays on its original slot."
	case delay.StateCancelled:
		header = "↩️ Reschedule withdrawn"
		details = "The request was cancelled by the player who made it."
	default:
		header = "Reschedule updated"
		details = fmt.Sprintf("The request is now %s.", state)
	}

	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))
	detailsText := fmt.Sprintf("%s vs %s\n%s", match.PlayerAID, match.PlayerBID, details)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the Slack message for a box table using Block Kit.
func (s *Notifier) formatStandings(boxName string, standings []league.BoxStanding, roster []league.PlayerRecord) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "🏆 Box standings"
	if boxName != "" {
		title = fmt.Sprintf("🏆 %s standings", boxName)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches recorded yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	names := rosterNames(roster)
	var lines []string
	for _, row := range standings {
		medal := positionMedal(row.Position)
		lines = append(lines, fmt.Sprintf("%s %s — %d pts (%dW / %dL, %d played)",
			medal, displayName(names, row.PlayerID), row.Points, row.Wins, row.Losses, row.MatchesPlayed))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerSnapshot creates the Slack message for a player analytics card.
func (s *Notifier) formatPlayerSnapshot(player *league.PlayerRecord, snapshot *analytics.Snapshot) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 %s", player.FullName()), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	if snapshot.CurrentStreak.Count > 0 {
		lines = append(lines, fmt.Sprintf("Current streak: %d %s in a row", snapshot.CurrentStreak.Count, streakNoun(snapshot.CurrentStreak.Type)))
	}
	if snapshot.BestWinStreak.Count > 0 {
		lines = append(lines, fmt.Sprintf("Best win streak: %d", snapshot.BestWinStreak.Count))
	}
	if len(snapshot.RecentForm) > 0 {
		lines = append(lines, fmt.Sprintf("Recent form: %s", formLetters(snapshot.RecentForm)))
	}
	if snapshot.Rival != nil {
		lines = append(lines, fmt.Sprintf("Rival: %s (%d meetings)", snapshot.Rival.OpponentID, len(snapshot.Rival.MatchIDs)))
	}
	if snapshot.TotalPointsThisYear > 0 {
		lines = append(lines, fmt.Sprintf("Points this year: %d", snapshot.TotalPointsThisYear))
	}
	if snapshot.GlobalRankingPosition > 0 {
		lines = append(lines, fmt.Sprintf("Club ranking: #%d", snapshot.GlobalRankingPosition))
	}
	if len(lines) == 0 {
		lines = append(lines, "No completed matches yet.")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates the Slack message for an unknown player query.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("No player matching \"%s\" was found.", query), true, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil))
}

func formatUnixTime(ts int64) string {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		return time.Unix(ts, 0).Format("Monday 02 Jan, 15:04")
	}
	return time.Unix(ts, 0).In(loc).Format("Monday 02 Jan, 15:04")
}

func rosterNames(roster []league.PlayerRecord) map[string]string {
	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.FullName()
	}
	return names
}

func displayName(names map[string]string, playerID string) string {
	if name, ok := names[playerID]; ok && name != "" {
		return name
	}
	return playerID
}

func positionMedal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", position)
	}
}

func streakNoun(result analytics.Result) string {
	if result == analytics.ResultWin {
		return "wins"
	}
	return "losses"
}

func formLetters(form []analytics.Result) string {
	letters := make([]string, 0, len(form))
	for _, r := range form {
		if r == analytics.ResultWin {
			letters = append(letters, "W")
		} else {
			letters = append(letters, "L")
		}
	}
	return strings.Join(letters, " ")
}
