/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import "fmt"

// Side identifies which contestant of a match won.
type Side int

const (
	SideTie Side = iota
	SidePlayer1
	SidePlayer2
)

func (s Side) String() string {
	switch s {
	case SidePlayer1:
		return "player1"
	case SidePlayer2:
		return "player2"
	default:
		return "tie"
	}
}

// Contestant is one side of a result line as it was reported.
type Contestant struct {
	Name     string
	Bracket  int
	GamesWon int
}

// MatchResult represents one parsed line of the results input.
type MatchResult struct {
	Line    int
	Player1 Contestant
	Player2 Contestant
	Winner  Side
}

func winnerFromGames(games1 int, games2 int) Side {
	if games1 > games2 {
		return SidePlayer1
	} else if games2 > games1 {
		return SidePlayer2
	}
	return SideTie
}

// Player represents one registered player from the player list input.
// Players are matched against results by Name.
type Player struct {
	Line    int
	ID      int
	Name    string
	Bracket int
	Rating  int
	Memo    string
}

// RatedPlayer is a Player after recalculation. The embedded Player carries
// the new Rating and Bracket.
type RatedPlayer struct {
	Player

	OldRating  int
	OldBracket int
}

func (p RatedPlayer) RatingChanged() bool {
	return p.Rating != p.OldRating
}

func (p RatedPlayer) BracketChanged() bool {
	return p.Bracket != p.OldBracket
}

// UnresolvedMatch records a match that was skipped because at least one of
// its contestants is not in the player list.
type UnresolvedMatch struct {
	Match   MatchResult
	Missing []string
}

func (u UnresolvedMatch) String() string {
	return fmt.Sprintf("line %d: player not found in player list: %v or %v",
		u.Match.Line, u.Match.Player1.Name, u.Match.Player2.Name)
}
