/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ladder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildTestLog(t *testing.T) *CalcLog {
	t.Helper()
	calc, err := Calculate(
		"Alice(3),2,Bob(3),0\nCarol(4),2,Al(6),1\nBob(3),1,Carol(4),1",
		"1,Alice(3),1500,\n2,Bob(3),1500,\n3,Carol(4),1100,\n4,Al(6),450,",
		Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return calc.Log
}

func TestFilterKeepsStructureAndPlayerLines(t *testing.T) {
	full := buildTestLog(t)
	view := full.Filter("Carol")

	if view.Highlight != "Carol" {
		t.Errorf("Highlight = %q; want Carol", view.Highlight)
	}
	for _, e := range view.Entries {
		if !e.Kind.Structural() && !e.Mentions("Carol") {
			t.Errorf("filtered log kept unrelated entry %q", e.Text)
		}
	}

	var structural, carol int
	for _, e := range full.Entries {
		if e.Kind.Structural() {
			structural++
		} else if e.Mentions("Carol") {
			carol++
		}
	}
	if len(view.Entries) != structural+carol {
		t.Errorf("filtered log has %d entries; want %d", len(view.Entries),
			structural+carol)
	}

	text := view.String()
	if strings.Contains(text, "Alice") {
		t.Errorf("Carol's view mentions Alice:\n%s", text)
	}
	if !strings.Contains(text, "Tie: Bob 1-1 Carol") {
		t.Errorf("Carol's view is missing her tie:\n%s", text)
	}
}

func TestFilterAllPlayersReturnsFullLog(t *testing.T) {
	full := buildTestLog(t)
	view := full.Filter(AllPlayers)
	if view.Highlight != "" {
		t.Errorf("Highlight = %q; want none", view.Highlight)
	}
	if diff := cmp.Diff(full.Entries, view.Entries); diff != "" {
		t.Errorf("unfiltered view differs:\n%s", diff)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	full := buildTestLog(t)
	before := full.String()
	_ = full.Filter("Bob")
	_ = full.Filter("Nobody")
	if full.String() != before {
		t.Errorf("Filter modified the source log")
	}
}

func TestFilterUnknownPlayerKeepsOnlyStructure(t *testing.T) {
	view := buildTestLog(t).Filter("Nobody")
	for _, e := range view.Entries {
		if !e.Kind.Structural() {
			t.Errorf("unexpected entry %q", e.Text)
		}
	}
}

func TestRenderHighlightsWholeNames(t *testing.T) {
	view := buildTestLog(t).Filter("Al")
	mark := func(name string) string { return "<mark>" + name + "</mark>" }

	text := view.Render(mark)
	if strings.Contains(text, "<mark>Al</mark>ice") {
		t.Errorf("highlight leaked into a longer name:\n%s", text)
	}
	if !strings.Contains(text, "beat <mark>Al</mark> (450)") {
		t.Errorf("match line not highlighted:\n%s", text)
	}

	if plain := view.Render(nil); strings.Contains(plain, "<mark>") {
		t.Errorf("nil highlighter emphasized text:\n%s", plain)
	}
}

func TestEmphasize(t *testing.T) {
	bold := func(s string) string { return "**" + s + "**" }
	cases := []struct {
		text, name, want string
	}{
		{"Bob beat Bobby", "Bob", "**Bob** beat Bobby"},
		{"Match: Ann (1) beat Bob (2)", "Bob", "Match: Ann (1) beat **Bob** (2)"},
		{"New ratings: Bob: 1, Ann: 2", "Bob", "New ratings: **Bob**: 1, Ann: 2"},
		{"nothing here", "Bob", "nothing here"},
		{"Jo Jo", "Jo", "**Jo** **Jo**"},
	}
	for _, c := range cases {
		if got := emphasize(c.text, c.name, bold); got != c.want {
			t.Errorf("emphasize(%q, %q) = %q; want %q", c.text, c.name, got,
				c.want)
		}
	}
}

func TestLogPlayers(t *testing.T) {
	got := buildTestLog(t).Players()
	want := []string{"Alice", "Bob", "Carol", "Al"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Players() mismatch (-want +got):\n%s", diff)
	}
}
