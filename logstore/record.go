/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package logstore persists rating calculation logs so they can be reviewed
// after a ladder night.
package logstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mikeb26/vttc-ratings/ladder"
)

var (
	ErrNoLogData = errors.New("log data is required")
	ErrNotFound  = errors.New("log not found")
)

// Record is one saved calculation log.
type Record struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	PlayerCount    int       `json:"playerCount"`
	MatchCount     int       `json:"matchCount"`
	SelectedPlayer string    `json:"selectedPlayer"`
	LogData        string    `json:"logData"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Store saves and lists calculation logs.
type Store interface {
	// Save assigns the record an ID and creation time, persists it and
	// returns the ID.
	Save(ctx context.Context, rec *Record) (string, error)
	// List returns every saved record, most recently created first.
	List(ctx context.Context) ([]Record, error)
}

// NewRecord captures calc as a record. selectedPlayer is the name the log
// was filtered to, or ladder.AllPlayers; logData is the rendered log text.
func NewRecord(calc *ladder.Calculation, selectedPlayer string,
	logData string, timestamp time.Time) *Record {

	selected := strings.TrimSpace(selectedPlayer)
	if selected == ladder.AllPlayers {
		selected = "all"
	}

	return &Record{
		Timestamp:      timestamp,
		PlayerCount:    len(calc.Players),
		MatchCount:     len(calc.Results),
		SelectedPlayer: selected,
		LogData:        logData,
	}
}

func (rec *Record) validate() error {
	if strings.TrimSpace(rec.LogData) == "" {
		return ErrNoLogData
	}
	return nil
}

// Since returns the records in recs created at or after t, keeping order.
// A zero t returns recs unchanged.
func Since(recs []Record, t time.Time) []Record {
	if t.IsZero() {
		return recs
	}
	ret := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if !rec.CreatedAt.Before(t) {
			ret = append(ret, rec)
		}
	}
	return ret
}
