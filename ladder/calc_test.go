/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC)

func TestCalculateEndToEnd(t *testing.T) {
	calc, err := Calculate("Alice(3),2,Bob(3),0",
		"1,Alice(3),1500,memo\n2,Bob(3),1500,memo", Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	wantRoster := "1,Alice(3),1520\n2,Bob(3),1484"
	if got := calc.Roster(); got != wantRoster {
		t.Errorf("Roster() = %q; want %q", got, wantRoster)
	}

	wantLog := strings.Join([]string{
		"Rating calculation log - 2025-06-02 19:30:00 UTC",
		strings.Repeat("=", 50),
		"Processing 1 matches for 2 players (1 rated, 0 ties, 0 skipped)",
		strings.Repeat("=", 50),
		"Match: Alice (1500) beat Bob (1500)",
		"Rating delta: 0, Index: 7, Winner +20, Loser -16",
		"New ratings: Alice: 1520, Bob: 1484",
		strings.Repeat("=", 50),
		"Final ratings:",
		"Alice  1500 → 1520",
		"Bob    1500 → 1484",
	}, "\n")
	if diff := cmp.Diff(wantLog, calc.Log.String()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateSeparator(t *testing.T) {
	calc, err := Calculate("Alice(3),2,Bob(3),0",
		"1,Alice(3),1500,\n2,Bob(3),1500,", Options{Now: fixedNow, Separator: "\t"})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := calc.Roster(); got != "1\tAlice(3)\t1520\n2\tBob(3)\t1484" {
		t.Errorf("Roster() = %q", got)
	}
}

func TestCalculateMalformedLineBlocksBatch(t *testing.T) {
	results := "Bob(3),1,Alice(3),0\nAlice,2,Bob(3),0\n"
	calc, err := Calculate(results, "1,Alice(3),1500,\n2,Bob(3),1500,",
		Options{Now: fixedNow})
	if calc != nil {
		t.Fatalf("Calculate returned a calculation despite line errors")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v; want *ValidationError", err)
	}
	if len(verr.ResultErrors) != 1 || len(verr.PlayerErrors) != 0 {
		t.Fatalf("errors = %+v; want exactly one results error", verr)
	}
	pe := verr.ResultErrors[0]
	if pe.Line != 2 || pe.Text != "Alice,2,Bob(3),0" {
		t.Errorf("error = %+v; want line 2", pe)
	}
	if errors.Is(err, ErrEmptyInput) {
		t.Errorf("line errors must not report as empty input")
	}
}

func TestCalculateSurfacesErrorsFromBothInputs(t *testing.T) {
	_, err := Calculate("bad\nAlice(3),2,Bob(3),0\nalso bad",
		"1,Alice(3),x,\nnope", Options{})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v; want *ValidationError", err)
	}
	if verr.Count() != 4 {
		t.Errorf("Count() = %d; want 4", verr.Count())
	}
	msg := verr.Error()
	for _, want := range []string{"results line 1", "results line 3",
		"players line 1", "players line 2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}

func TestCalculateEmptyInputs(t *testing.T) {
	cases := []struct {
		name    string
		results string
		players string
	}{
		{"no results", "\n\n", "1,Alice(3),1500,"},
		{"only byes", "Alice(3),1,Bye,0", "1,Alice(3),1500,"},
		{"no players", "Alice(3),2,Bob(3),0", "  \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			calc, err := Calculate(c.results, c.players, Options{})
			if calc != nil {
				t.Errorf("Calculate returned a calculation for empty input")
			}
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("err = %v; want ErrEmptyInput", err)
			}
			var verr *ValidationError
			if errors.As(err, &verr) {
				t.Errorf("empty input reported as validation error")
			}
		})
	}
}

func TestCalculateIdempotent(t *testing.T) {
	results := "Alice(3),2,Bob(3),0\nCarol(4),2,Alice(3),0\nDan(9),1,Alice(3),0"
	players := "1,Alice(3),1500,\n2,Bob(3),1500,\n3,Carol(4),1100,"

	a, err := Calculate(results, players, Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	b, err := Calculate(results, players, Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if a.Roster() != b.Roster() {
		t.Errorf("rosters differ:\n%s\n---\n%s", a.Roster(), b.Roster())
	}
	if a.Log.String() != b.Log.String() {
		t.Errorf("logs differ:\n%s\n---\n%s", a.Log, b.Log)
	}
	if len(a.Unresolved) != 1 {
		t.Errorf("unresolved = %v; want the Dan match", a.Unresolved)
	}
}
