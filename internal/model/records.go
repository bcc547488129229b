package model

// Team ids reserved for players outside a franchise.
const (
	DraftTeamID     = -2
	FreeAgentTeamID = -1
	DraftTeamAbbrev = "Draft"
	FreeAgentAbbrev = "FA" // free agent pool
)

// PlayerRatingRecord is one realized rating snapshot. Unique by (PlayerID, Season).
type PlayerRatingRecord struct {
	PlayerID  int
	TeamID    int
	Name      string
	BirthYear int
	Position  Position
	Season    int
	Age       int
	Ovr       int
}

// SalaryRecord is the last salary amendment for a (PlayerID, Season), in millions.
type SalaryRecord struct {
	PlayerID int
	Season   int
	Amount   float64
}

// DraftRecord holds a player's draft year. At most one per player.
type DraftRecord struct {
	PlayerID int
	Year     int
}

// Team maps a team id to its abbreviation.
type Team struct {
	ID     int    `json:"tid"`
	Abbrev string `json:"team"`
}

// SeasonKey identifies one row of any per-player-per-season table.
type SeasonKey struct {
	PlayerID int
	Season   int
}

// Dataset is the canonical, decoded form of one league export: everything
// the pipeline consumes besides the reference artifacts.
type Dataset struct {
	Season      int
	UserTeamID  int
	Ratings     []PlayerRatingRecord
	Salaries    []SalaryRecord
	Drafts      []DraftRecord
	Teams       []Team
	Birthplaces map[int]string // player id → country
}
