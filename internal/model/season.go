package model

// Status classifies which salary a row is valued against.
type Status string

const (
	StatusCurrent Status = "current"
	StatusNext    Status = "next"
	StatusNone    Status = "none"
)

// ProjectedSeason is one (player, season) row of the projection horizon.
// Ovr and CapValue are realized for the reference season and projected
// afterwards; nil means no progression curve matched.
type ProjectedSeason struct {
	PlayerID  int
	TeamID    int
	Name      string
	Season    int
	Age       int
	Position  Position
	DraftYear *int
	Salary    *float64
	Ovr       *float64
	CapValue  *float64
}

// Key returns the row's (player, season) identity.
func (p ProjectedSeason) Key() SeasonKey {
	return SeasonKey{PlayerID: p.PlayerID, Season: p.Season}
}

// PlaceholderSeason adds the synthesized next-contract salary. SalaryNext is
// only ever set when Salary is nil.
type PlaceholderSeason struct {
	ProjectedSeason
	SalaryNext *float64
}

// ValuedSeason is the final valuation row produced once per pipeline run.
type ValuedSeason struct {
	PlayerID  int      `json:"pid"`
	Name      string   `json:"player"`
	TeamID    int      `json:"tid"`
	Season    int      `json:"season"`
	DraftYear *int     `json:"draft_year"`
	Position  Position `json:"pos"`
	Age       int      `json:"age"`
	Status    Status   `json:"status"`
	Ovr       *float64 `json:"ovr"`
	Pot       *float64 `json:"pot"`
	Value     *float64 `json:"value"`
	Salary    *float64 `json:"salary"`
	Surplus   *float64 `json:"surplus"`
	CVCurrent float64  `json:"cv_current"`
	CVNext    float64  `json:"cv_next"`
	CVTotal   float64  `json:"cv_total"`
}

// Key returns the row's (player, season) identity.
func (v ValuedSeason) Key() SeasonKey {
	return SeasonKey{PlayerID: v.PlayerID, Season: v.Season}
}

// RankedSeason extends a ValuedSeason with team metadata, cross-sectional
// ranks and role labels. The embedded valuation is never modified.
type RankedSeason struct {
	ValuedSeason
	Team            string   `json:"team"`
	Country         string   `json:"country"`
	IsCurrent       bool     `json:"is_current"`
	Years           int      `json:"years"`
	MaxValue        *float64 `json:"max_value"`
	SumValue        float64  `json:"sum_value"`
	PositionRank    *int     `json:"p_rk"`
	IsProspect      bool     `json:"is_prospect"`
	ProspectRank    *int     `json:"pr_rk"`
	ProspectRankPos *int     `json:"pr_rk_pos"`
	Line            string   `json:"line"`
}

// Float returns a pointer to v. Used to build nullable columns.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
