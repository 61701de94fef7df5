/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFieldCount  = errors.New("invalid format: expected 4 comma-separated values")
	ErrNameBracket = errors.New(`expected "Name(bracket)"`)
	ErrGames       = errors.New("games must be a number")
	ErrPlayerID    = errors.New("invalid player ID: must be a number")
	ErrRating      = errors.New("invalid rating: must be a number between -1000000 and 1000000")

	// ErrEmptyInput is returned when parsing succeeded but left nothing to
	// calculate with. It is not a line format problem.
	ErrEmptyInput = errors.New("no valid results or players to process")
)

// ParseError describes a single input line that could not be parsed.
type ParseError struct {
	// Line is 1-based over the original, unsplit input.
	Line int
	// Text is the raw line as it appeared in the input.
	Text string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// Input names one of the two text blocks a calculation consumes.
type Input string

const (
	InputResults Input = "results"
	InputPlayers Input = "players"
)

// ValidationError carries every line error found in both inputs. When it is
// returned no ratings were changed.
type ValidationError struct {
	ResultErrors []ParseError
	PlayerErrors []ParseError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d line error(s) in input",
		len(e.ResultErrors)+len(e.PlayerErrors)))
	writeErrs := func(in Input, errs []ParseError) {
		for _, pe := range errs {
			sb.WriteString(fmt.Sprintf("\n  %v %v", in, pe.Error()))
		}
	}
	writeErrs(InputResults, e.ResultErrors)
	writeErrs(InputPlayers, e.PlayerErrors)

	return sb.String()
}

// Count returns the total number of line errors.
func (e *ValidationError) Count() int {
	return len(e.ResultErrors) + len(e.PlayerErrors)
}
