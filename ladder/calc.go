/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"fmt"
	"time"
)

// Options tune a calculation. The zero value is usable.
type Options struct {
	// Now stamps the log header; zero means time.Now().
	Now time.Time
	// Separator is used by Calculation.Roster; empty means DefaultSeparator.
	Separator string
}

// Calculation is the outcome of one successful run.
type Calculation struct {
	Results    []MatchResult
	Players    []RatedPlayer
	Unresolved []UnresolvedMatch
	Log        *CalcLog

	separator string
}

// Roster renders the updated player list.
func (c *Calculation) Roster() string {
	return FormatRoster(c.Players, c.separator)
}

// Calculate parses both inputs and, if every line of both is well formed,
// replays the results against the player list.
//
// Line errors from both inputs are returned together as a *ValidationError
// and no ratings are computed. If either input has no usable lines the
// returned error wraps ErrEmptyInput.
func Calculate(resultsText string, playersText string,
	opts Options) (*Calculation, error) {

	results, resultErrs := ParseResults(resultsText)
	players, playerErrs := ParsePlayers(playersText)

	if len(resultErrs) > 0 || len(playerErrs) > 0 {
		return nil, &ValidationError{
			ResultErrors: resultErrs,
			PlayerErrors: playerErrs,
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %v has no matches", ErrEmptyInput,
			InputResults)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: %v has no players", ErrEmptyInput,
			InputPlayers)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rated, narrative := Recompute(players, results)

	return &Calculation{
		Results:    results,
		Players:    rated,
		Unresolved: narrative.Unresolved,
		Log:        BuildLog(now, rated, narrative, len(results)),
		separator:  opts.Separator,
	}, nil
}
