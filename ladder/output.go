/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSeparator is the field separator of the player list format.
const DefaultSeparator = ","

const (
	logTimeLayout = "2006-01-02 15:04:05 MST"
	dividerWidth  = 50
)

// FormatRoster renders players back into the player list format without the
// memo field: one "id<sep>Name(bracket)<sep>rating" line per player.
func FormatRoster(players []RatedPlayer, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	lines := make([]string, len(players))
	for i, p := range players {
		lines[i] = fmt.Sprintf("%d%s%s(%d)%s%d", p.ID, sep, p.Name, p.Bracket,
			sep, p.Rating)
	}
	return strings.Join(lines, "\n")
}

// BuildLog assembles the full calculation log: header, summary, the match
// narrative in the order it was produced, and a final ratings section.
func BuildLog(now time.Time, players []RatedPlayer, n Narrative,
	matchCount int) *CalcLog {

	divider := strings.Repeat("=", dividerWidth)
	l := &CalcLog{}
	add := func(kind EntryKind, players []string, text string) {
		l.Entries = append(l.Entries, LogEntry{Kind: kind, Text: text,
			Players: players})
	}

	add(KindHeader, nil, fmt.Sprintf("Rating calculation log - %v",
		now.Format(logTimeLayout)))
	add(KindDivider, nil, divider)
	add(KindSummary, nil, fmt.Sprintf(
		"Processing %d matches for %d players (%d rated, %d ties, %d skipped)",
		matchCount, len(players), n.Applied, n.Ties, len(n.Unresolved)))
	add(KindDivider, nil, divider)
	l.Entries = append(l.Entries, n.Entries...)
	add(KindDivider, nil, divider)
	add(KindSection, nil, "Final ratings:")

	nameWidth := 0
	for _, p := range players {
		if w := len(p.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, p := range players {
		text := fmt.Sprintf("%-*s  %d → %d", nameWidth, p.Name, p.OldRating,
			p.Rating)
		if p.BracketChanged() {
			text += fmt.Sprintf(" (bracket %d → %d)", p.OldBracket, p.Bracket)
		}
		add(KindFinal, []string{p.Name}, text)
	}

	return l
}
