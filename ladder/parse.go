/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// byeMarker identifies a bye round in the results input; such lines carry no
// result and are ignored.
const byeMarker = ",Bye,0"

const numFields = 4

var nameBracketRe = regexp.MustCompile(`^(.+)\((\d+)\)$`)

// parseNameBracket splits a "Name(bracket)" field.
func parseNameBracket(field string) (string, int, bool) {
	m := nameBracketRe.FindStringSubmatch(strings.TrimSpace(field))
	if m == nil {
		return "", 0, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", 0, false
	}
	bracket, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}

	return name, bracket, true
}

// maxRating bounds a parsed rating so differences between two ratings cannot
// overflow.
const maxRating = 1_000_000

func parseInt(field string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	return v, err == nil
}

func splitFields(line string) ([]string, error) {
	parts := strings.Split(line, ",")
	if len(parts) != numFields {
		return nil, ErrFieldCount
	}
	return parts, nil
}

// ParseMatchLine parses one "Name1(b1),g1,Name2(b2),g2" line. Blank lines and
// bye lines yield (nil, nil).
func ParseMatchLine(line string) (*MatchResult, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.Contains(trimmed, byeMarker) {
		return nil, nil
	}

	parts, err := splitFields(trimmed)
	if err != nil {
		return nil, err
	}

	var contestants [2]Contestant
	for i := range contestants {
		pos := i + 1
		name, bracket, ok := parseNameBracket(parts[2*i])
		if !ok {
			return nil, fmt.Errorf("invalid player %d format: %w", pos,
				ErrNameBracket)
		}
		games, ok := parseInt(parts[2*i+1])
		if !ok {
			return nil, fmt.Errorf("invalid player %d games: %w", pos, ErrGames)
		}
		contestants[i] = Contestant{Name: name, Bracket: bracket, GamesWon: games}
	}

	return &MatchResult{
		Player1: contestants[0],
		Player2: contestants[1],
		Winner:  winnerFromGames(contestants[0].GamesWon, contestants[1].GamesWon),
	}, nil
}

// ParsePlayerLine parses one "id,Name(bracket),rating,memo" line. Blank lines
// yield (nil, nil).
func ParsePlayerLine(line string) (*Player, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	parts, err := splitFields(trimmed)
	if err != nil {
		return nil, err
	}

	id, ok := parseInt(parts[0])
	if !ok {
		return nil, ErrPlayerID
	}
	name, bracket, ok := parseNameBracket(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid name format: %w", ErrNameBracket)
	}
	rating, ok := parseInt(parts[2])
	if !ok || rating < -maxRating || rating > maxRating {
		return nil, ErrRating
	}

	return &Player{
		ID:      id,
		Name:    name,
		Bracket: bracket,
		Rating:  rating,
		Memo:    strings.TrimSpace(parts[3]),
	}, nil
}

// parseLines applies parseOne to every line of text. Line numbers refer to
// the position in text regardless of how many lines were skipped.
func parseLines[T any](text string, parseOne func(string) (*T, error),
	setLine func(*T, int)) ([]T, []ParseError) {

	var records []T
	var errs []ParseError

	for idx, line := range strings.Split(text, "\n") {
		lineNum := idx + 1
		rec, err := parseOne(line)
		if err != nil {
			errs = append(errs, ParseError{Line: lineNum, Text: line, Err: err})
			continue
		}
		if rec == nil {
			continue
		}
		setLine(rec, lineNum)
		records = append(records, *rec)
	}

	return records, errs
}

// ParseResults parses a whole results block, collecting every line error
// rather than stopping at the first.
func ParseResults(text string) ([]MatchResult, []ParseError) {
	return parseLines(text, ParseMatchLine, func(m *MatchResult, n int) {
		m.Line = n
	})
}

// ParsePlayers parses a whole player list block, collecting every line error
// rather than stopping at the first.
func ParsePlayers(text string) ([]Player, []ParseError) {
	return parseLines(text, ParsePlayerLine, func(p *Player, n int) {
		p.Line = n
	})
}
