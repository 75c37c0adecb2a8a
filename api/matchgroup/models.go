/* models.go
 * Contains the typed in-memory model for one bracket or matchlist group. These structs are built
 * fresh per query from raw LiquipediaDB match2 records and are never persisted
 */

package matchgroup

// Record is one raw match2 row as returned by the LiquipediaDB api or a page-local cache.
// Some fields arrive as JSON-encoded strings, others as already-structured containers; the
// normalizer accepts both forms transparently.
type Record map[string]interface{}

// Player is a single player attached to an opponent
type Player struct {
	Name        string
	DisplayName string
	Flag        string
	Extradata   map[string]interface{}
}

// Opponent is one participant slot of a match. Score2/Status2/Placement2 are the secondary
// fields populated by a bracket reset merge
type Opponent struct {
	Type       string // e.g. "team", "literal", "tbd"
	Name       string
	Template   string
	Score      *int
	Score2     *int
	Status     string
	Status2    string
	Placement  *int
	Placement2 *int
	Advances   *bool
	AdvanceBg  string
	Players    []*Player
	Extradata  map[string]interface{}
}

// Game is a single map/game played within a match
type Game struct {
	Date         string
	Finished     *bool
	Map          string
	Mode         string
	Winner       string
	Scores       []int
	Participants map[string]interface{}
	Extradata    map[string]interface{}
}

// Match is one fully-typed match. MatchID is the base id (record form, e.g. "R01-M003"),
// unique within its group
type Match struct {
	MatchID             string
	Date                string
	DateExact           *bool
	Finished            *bool
	Winner              string
	BestOf              int
	Comment             string
	PositionBackgrounds []string // lifted from extradata pbg1..pbgN
	Opponents           []*Opponent
	Games               []*Game
	Extradata           map[string]interface{}
	Links               map[string]interface{}
	Stream              map[string]interface{}
	BracketData         BracketData
}

// BracketData is the tagged union carried by every match: exactly one of MatchlistData or
// BracketMatchData
type BracketData interface {
	Kind() string
}

// MatchlistData is the matchlist variant: header/title only, no topology
type MatchlistData struct {
	Header string
	Title  string
}

func (*MatchlistData) Kind() string { return "matchlist" }

// BracketMatchData is the bracket variant, carrying the topology of one match node
type BracketMatchData struct {
	Header              string
	ParentMatchID       string
	ChildMatchIDs       []string
	ChildEdges          []ChildEdge
	AdvanceSpots        []*AdvanceSpot // slot 1 = winner destination, slot 2 = loser; nil slot = absent
	BracketResetMatchID string
	ThirdPlaceMatchID   string
	WinnerTo            string // legacy explicit winner target
	LoserTo             string // legacy explicit loser target
	QualWin             bool
	QualLose            bool
	QualWinLiteral      string
	QualLoseLiteral     string
	QualSkip            int
	SkipRound           int
	Coordinates         *Coordinates
}

func (*BracketMatchData) Kind() string { return "bracket" }

// Coordinates is the structural address of a match within its bracket tree. All indices are
// 1-based in memory; the stored-record encoding is 0-based and converted at the boundary
type Coordinates struct {
	Depth             int
	Round             int
	RoundCount        int
	Section           int
	SectionCount      int
	MatchIndexInRound int
	RootIndex         int
}

// AdvanceSpot describes where a finishing opponent proceeds to
type AdvanceSpot struct {
	Bg      string // one of "up", "stayup", "stay", "staydown", "down"
	Kind    string // one of "advance", "custom", "qualify"
	MatchID string // optional target match
}

// ChildEdge maps a child match's position to the parent opponent slot it feeds. Both indices
// are 1-based
type ChildEdge struct {
	ChildMatchIndex int
	OpponentIndex   int
}

// Group unifies the two aggregate shapes the builder can produce
type Group interface {
	Kind() string
	GroupID() string
	AllMatches() []*Match
	Match(matchID string) *Match
}

// Matchlist is a flat, unstructured list of matches
type Matchlist struct {
	ID          string
	Matches     []*Match
	MatchesByID map[string]*Match
}

func (m *Matchlist) Kind() string        { return TypeMatchlist }
func (m *Matchlist) GroupID() string     { return m.ID }
func (m *Matchlist) AllMatches() []*Match { return m.Matches }

func (m *Matchlist) Match(matchID string) *Match {
	return m.MatchesByID[matchID]
}

// Bracket is a single/double-elimination structure with resolved topology. Rounds and
// Sections are ordered lists of ordered match id lists and together partition all
// non-excluded matches
type Bracket struct {
	ID                   string
	Matches              []*Match
	MatchesByID          map[string]*Match
	BracketDatasByID     map[string]*BracketMatchData
	CoordinatesByMatchID map[string]*Coordinates
	RootMatchIDs         []string
	Rounds               [][]string
	Sections             [][]string
}

func (b *Bracket) Kind() string         { return TypeBracket }
func (b *Bracket) GroupID() string      { return b.ID }
func (b *Bracket) AllMatches() []*Match { return b.Matches }

func (b *Bracket) Match(matchID string) *Match {
	return b.MatchesByID[matchID]
}

// Group type discriminators. An unrecognized or missing discriminator on input records
// defaults to TypeMatchlist
const (
	TypeMatchlist = "matchlist"
	TypeBracket   = "bracket"
)

// Advance spot backgrounds and kinds
const (
	BgUp       = "up"
	BgStayUp   = "stayup"
	BgStay     = "stay"
	BgStayDown = "staydown"
	BgDown     = "down"

	AdvanceKindAdvance = "advance"
	AdvanceKindCustom  = "custom"
	AdvanceKindQualify = "qualify"
)
