package entity

import "time"

type MatchAction string

const (
	MatchActionLike MatchAction = "LIKE"
	MatchActionPass MatchAction = "PASS"
)

// Match is one directed expression of interest. A confirmed match is the pair
// of rows (A→B LIKE) and (B→A LIKE), both flagged IsMatched. At most one row
// exists per ordered (from, to) pair; the first action is final.
type Match struct {
	Id            uint
	FromProfileId uint
	ToProfileId   uint
	Action        MatchAction
	IsMatched     bool
	CreatedAt     time.Time
}

// MarkAsMatched flips the matched flag. The flag only ever goes false→true.
func (m *Match) MarkAsMatched() {
	m.IsMatched = true
}

// Involves reports whether the profile is either side of this row.
func (m *Match) Involves(profileId uint) bool {
	return m.FromProfileId == profileId || m.ToProfileId == profileId
}
