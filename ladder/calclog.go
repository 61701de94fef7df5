/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EntryKind classifies a calculation log line.
type EntryKind int

const (
	KindHeader EntryKind = iota
	KindDivider
	KindSummary
	KindSection
	KindMatch
	KindDelta
	KindRatings
	KindBracket
	KindTie
	KindSkipped
	KindFinal
)

// Structural entries frame the log and survive any player filter.
func (k EntryKind) Structural() bool {
	switch k {
	case KindHeader, KindDivider, KindSummary, KindSection:
		return true
	}
	return false
}

// LogEntry is one line of the calculation log together with the players it
// concerns.
type LogEntry struct {
	Kind    EntryKind
	Text    string
	Players []string
}

func (e LogEntry) Mentions(name string) bool {
	return slices.Contains(e.Players, name)
}

// AllPlayers disables filtering when passed to Filter.
const AllPlayers = ""

// CalcLog is the narrative of one calculation run.
type CalcLog struct {
	Entries []LogEntry

	// Highlight is the player a filtered view was built for.
	Highlight string
}

// Filter returns a view of the log restricted to a single player. Structural
// lines are always kept. Filtering by AllPlayers returns the full log.
func (l *CalcLog) Filter(player string) *CalcLog {
	player = strings.TrimSpace(player)
	if player == AllPlayers {
		return &CalcLog{Entries: slices.Clone(l.Entries)}
	}

	out := &CalcLog{Highlight: player}
	for _, e := range l.Entries {
		if e.Kind.Structural() || e.Mentions(player) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// Players returns every distinct player named in the log, in first-seen
// order.
func (l *CalcLog) Players() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range l.Entries {
		for _, p := range e.Players {
			if !seen[p] {
				seen[p] = true
				names = append(names, p)
			}
		}
	}
	return names
}

// Highlighter decorates an occurrence of the highlighted player name for a
// particular presentation (terminal colour, markdown, html).
type Highlighter func(name string) string

// Render joins the log into text. When the log is a filtered view and h is
// non-nil, each whole-word occurrence of the highlighted name is passed
// through h.
func (l *CalcLog) Render(h Highlighter) string {
	lines := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		text := e.Text
		if h != nil && l.Highlight != "" && e.Mentions(l.Highlight) {
			text = emphasize(text, l.Highlight, h)
		}
		lines[i] = text
	}
	return strings.Join(lines, "\n")
}

func (l *CalcLog) String() string {
	return l.Render(nil)
}

// emphasize wraps occurrences of name in text that are not part of a longer
// word, so highlighting "Al" leaves "Alice" alone.
func emphasize(text string, name string, h Highlighter) string {
	if name == "" {
		return text
	}

	var sb strings.Builder
	rest := text
	for {
		idx := strings.Index(rest, name)
		if idx < 0 {
			sb.WriteString(rest)
			break
		}
		end := idx + len(name)
		before, _ := utf8.DecodeLastRuneInString(rest[:idx])
		after, _ := utf8.DecodeRuneInString(rest[end:])
		sb.WriteString(rest[:idx])
		if isWordRune(before) || isWordRune(after) {
			sb.WriteString(name)
		} else {
			sb.WriteString(h(name))
		}
		rest = rest[end:]
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
