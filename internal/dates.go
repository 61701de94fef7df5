/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero parses a user supplied date in any common layout. Empty
// input, or "null" as posted by the web page, yields the zero time.
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t, nil
}

// ParseSince resolves a lower bound for listing saved logs. Besides dates it
// accepts "today", "yesterday" and durations such as "72h" or "14d" counted
// back from now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0,
		now.Location())

	switch strings.ToLower(s) {
	case "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	}

	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n >= 0 {
			return now.AddDate(0, 0, -n), nil
		}
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return now.Add(-d), nil
	}

	return ParseDateOrZero(s)
}
