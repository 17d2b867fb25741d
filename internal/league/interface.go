package league

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	UpsertPlayers(players []PlayerRecord) error
	UpsertSeasons(seasons []SeasonRecord) error
	UpsertMatch(match *MatchRecord) error
	UpsertMatches(matches []*MatchRecord) error
	GetPlayers(boxID string) ([]PlayerRecord, error)
	GetPlayer(playerID string) (*PlayerRecord, error)
	GetSeasons() ([]SeasonRecord, error)
	GetMatch(matchID string) (*MatchRecord, error)
	GetMatches(q MatchQuery) ([]*MatchRecord, error)
	UpdateDelayNegotiation(match *MatchRecord) error
	IsKnownPlayer(playerID string) bool
	Clear()
}
