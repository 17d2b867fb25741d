package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tibaulingg/boxleague/internal/database"
	"github.com/tibaulingg/boxleague/internal/league"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "boxleague-seed.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

var firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Tony", "Leslie"}
var lastNames = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hoare", "Lamport"}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := league.New(db)
	now := time.Now()

	season := league.SeasonRecord{
		ID:        "season-" + fmt.Sprint(now.Year()),
		StartDate: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Unix(),
		EndDate:   time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC).Unix(),
		Status:    league.SeasonStatusRunning,
	}
	if err := store.UpsertSeasons([]league.SeasonRecord{season}); err != nil {
		log.Fatalf("Failed to seed season: %s", err)
	}
	log.Info("Seeded season", "seasonID", season.ID)

	boxes := []string{"box-1", "box-2"}
	var players []league.PlayerRecord
	for i := range firstNames {
		players = append(players, league.PlayerRecord{
			ID:        uuid.NewString(),
			FirstName: firstNames[i],
			LastName:  lastNames[i],
			Membership: &league.BoxMembership{
				BoxID:         boxes[i%len(boxes)],
				BoxName:       fmt.Sprintf("Box %d", i%len(boxes)+1),
				SeasonID:      season.ID,
				NextBoxStatus: league.NextBoxContinue,
			},
		})
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players", "count", len(players))

	// Full round robin within each box, with a spread of outcomes: most
	// matches played, some still scheduled, the occasional no-show, retirement
	// or open reschedule request.
	var matches []*league.MatchRecord
	for _, boxID := range boxes {
		var boxPlayers []league.PlayerRecord
		for _, p := range players {
			if p.Membership.BoxID == boxID {
				boxPlayers = append(boxPlayers, p)
			}
		}
		for i := 0; i < len(boxPlayers); i++ {
			for j := i + 1; j < len(boxPlayers); j++ {
				matches = append(matches, seedMatch(season.ID, boxID, boxPlayers[i].ID, boxPlayers[j].ID, now))
			}
		}
	}
	if err := store.UpsertMatches(matches); err != nil {
		log.Fatalf("Failed to seed matches: %s", err)
	}
	log.Info("Seeded matches", "count", len(matches))
	log.Info("Seeding complete.")
}

func seedMatch(seasonID, boxID, playerA, playerB string, now time.Time) *league.MatchRecord {
	m := &league.MatchRecord{
		ID:        uuid.NewString(),
		BoxID:     boxID,
		SeasonID:  seasonID,
		PlayerAID: playerA,
		PlayerBID: playerB,
	}
	scheduledAt := now.Add(-time.Duration(rand.Intn(60*24)) * time.Hour).Unix()
	m.ScheduledAt = &scheduledAt

	switch roll := rand.Intn(10); {
	case roll < 6: // played with a real score
		playedAt := scheduledAt + 3600
		winner, loser := 3, rand.Intn(3)
		if rand.Intn(2) == 0 {
			m.ScoreA, m.ScoreB = &winner, &loser
		} else {
			m.ScoreA, m.ScoreB = &loser, &winner
		}
		m.PlayedAt = &playedAt
	case roll == 6: // no-show
		m.NoShowPlayerID = &m.PlayerBID
	case roll == 7: // retirement
		m.RetiredPlayerID = &m.PlayerAID
	case roll == 8: // open reschedule request
		requestedAt := now.Add(-2 * time.Hour).Unix()
		m.DelayedRequestedBy = &m.PlayerAID
		m.DelayedStatus = league.DelayStatusPending
		m.DelayedRequestedAt = &requestedAt
	default:
		// still scheduled
	}
	return m
}
