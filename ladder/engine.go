/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"fmt"
	"log"
)

// Narrative is the per-match account of a Recompute run.
type Narrative struct {
	Entries    []LogEntry
	Applied    int
	Ties       int
	Unresolved []UnresolvedMatch
}

func (n *Narrative) add(kind EntryKind, players []string, format string,
	args ...any) {

	n.Entries = append(n.Entries, LogEntry{
		Kind:    kind,
		Text:    fmt.Sprintf(format, args...),
		Players: players,
	})
}

// ratingMap is the working name->rating state of a single run.
type ratingMap map[string]int

func newRatingMap(players []Player) ratingMap {
	ratings := make(ratingMap, len(players))
	for _, p := range players {
		ratings[p.Name] = p.Rating
	}
	return ratings
}

// applyMatch folds one result into ratings. Ratings compound across matches,
// so the order results are applied in matters.
func (ratings ratingMap) applyMatch(m MatchResult, n *Narrative) {
	p1, p2 := m.Player1.Name, m.Player2.Name
	both := []string{p1, p2}

	if m.Winner == SideTie {
		n.Ties++
		n.add(KindTie, both, "Tie: %v %d-%d %v, no rating change", p1,
			m.Player1.GamesWon, m.Player2.GamesWon, p2)
		return
	}

	r1, ok1 := ratings[p1]
	r2, ok2 := ratings[p2]
	if !ok1 || !ok2 {
		u := UnresolvedMatch{Match: m}
		if !ok1 {
			u.Missing = append(u.Missing, p1)
		}
		if !ok2 {
			u.Missing = append(u.Missing, p2)
		}
		n.Unresolved = append(n.Unresolved, u)
		log.Printf("ladder.recompute: %v", u)
		n.add(KindSkipped, both, "Skipped line %d: player not found in player list: %v or %v",
			m.Line, p1, p2)
		return
	}

	winner, loser := p1, p2
	winnerRating, loserRating := r1, r2
	if m.Winner == SidePlayer2 {
		winner, loser = p2, p1
		winnerRating, loserRating = r2, r1
	}

	delta := winnerRating - loserRating
	idx, adj := AdjustmentFor(delta)
	newWinnerRating := winnerRating + adj.Gain
	newLoserRating := loserRating + adj.Loss
	ratings[winner] = newWinnerRating
	ratings[loser] = newLoserRating
	n.Applied++

	n.add(KindMatch, both, "Match: %v (%d) beat %v (%d)", winner, winnerRating,
		loser, loserRating)
	n.add(KindDelta, both, "Rating delta: %d, Index: %d, Winner +%d, Loser %d",
		delta, idx, adj.Gain, adj.Loss)
	n.add(KindRatings, both, "New ratings: %v: %d, %v: %d", winner,
		newWinnerRating, loser, newLoserRating)

	for _, c := range []struct {
		name          string
		before, after int
	}{
		{winner, winnerRating, newWinnerRating},
		{loser, loserRating, newLoserRating},
	} {
		oldB, newB := BracketForRating(c.before), BracketForRating(c.after)
		if oldB != newB {
			n.add(KindBracket, []string{c.name}, "%v bracket change: %d → %d",
				c.name, oldB, newB)
		}
	}
}

// Recompute replays results in order against players and returns every
// player with their new rating and bracket, in input order, together with
// the narrative of what happened. Matches naming an unknown player are
// skipped. Neither argument is modified.
func Recompute(players []Player, results []MatchResult) ([]RatedPlayer, Narrative) {
	ratings := newRatingMap(players)

	var n Narrative
	for _, m := range results {
		ratings.applyMatch(m, &n)
	}

	rated := make([]RatedPlayer, len(players))
	for i, p := range players {
		rp := RatedPlayer{
			Player:     p,
			OldRating:  p.Rating,
			OldBracket: p.Bracket,
		}
		rp.Rating = ratings[p.Name]
		rp.Bracket = BracketForRating(rp.Rating)
		rated[i] = rp
	}

	return rated, n
}
