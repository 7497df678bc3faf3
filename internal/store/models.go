package store

import "time"

// Match lifecycle statuses. Scores are only meaningful once a match is
// completed.
const (
	MatchStatusScheduled  = "SCHEDULED"
	MatchStatusInProgress = "IN_PROGRESS"
	MatchStatusCompleted  = "COMPLETED"
	MatchStatusPostponed  = "POSTPONED"
	MatchStatusCancelled  = "CANCELLED"
)

const (
	CardYellow = "YELLOW"
	CardRed    = "RED"
)

// Playoff round labels. Matches in these rounds never touch the season table.
const (
	RoundSemifinal = "Semifinal"
	RoundFinal     = "Final"
)

type Championship struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Subtitle    *string    `json:"subtitle"`
	Season      string     `json:"season"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	Description *string    `json:"description"`
}

type Team struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Neighborhood string     `json:"neighborhood"`
	Description  *string    `json:"description"`
	Logo         *string    `json:"logo"`
	Color        *string    `json:"color"`
	FoundedAt    *time.Time `json:"foundedAt"`
	Sponsor1     *string    `json:"sponsor1"`
	Sponsor2     *string    `json:"sponsor2"`
	Sponsor3     *string    `json:"sponsor3"`
	Sponsor4     *string    `json:"sponsor4"`
	Sponsor5     *string    `json:"sponsor5"`
	Sponsor6     *string    `json:"sponsor6"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Player struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Position string `json:"position"`
	IsActive bool   `json:"isActive"`
}

type Match struct {
	ID         string    `json:"id"`
	HomeTeamID string    `json:"homeTeamId"`
	AwayTeamID string    `json:"awayTeamId"`
	Date       time.Time `json:"date"`
	Venue      *string   `json:"venue"`
	Round      *string   `json:"round"`
	Status     string    `json:"status"`
	HomeScore  *int      `json:"homeScore"`
	AwayScore  *int      `json:"awayScore"`
	Notes      *string   `json:"notes"`
}

type Goal struct {
	ID        string `json:"id"`
	MatchID   string `json:"matchId"`
	PlayerID  string `json:"playerId"`
	Minute    int    `json:"minute"`
	IsOwnGoal bool   `json:"isOwnGoal"`
	IsPenalty bool   `json:"isPenalty"`
}

type Assist struct {
	ID       string `json:"id"`
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
	Minute   int    `json:"minute"`
}

type Card struct {
	ID       string `json:"id"`
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
}

type TeamStatistic struct {
	ID            string `json:"id"`
	TeamID        string `json:"teamId"`
	Season        string `json:"season"`
	MatchesPlayed int    `json:"matchesPlayed"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	GoalsFor      int    `json:"goalsFor"`
	GoalsAgainst  int    `json:"goalsAgainst"`
	Points        int    `json:"points"`
}

type PlayerStatistic struct {
	ID            string `json:"id"`
	PlayerID      string `json:"playerId"`
	Season        string `json:"season"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellowCards"`
	RedCards      int    `json:"redCards"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

type News struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     *string    `json:"summary"`
	ImageURL    *string    `json:"imageUrl"`
	Author      *string    `json:"author"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsPlayoffRound reports whether a round label marks a playoff match.
func IsPlayoffRound(round *string) bool {
	if round == nil {
		return false
	}
	return *round == RoundSemifinal || *round == RoundFinal
}
