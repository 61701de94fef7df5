/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/mikeb26/vttc-ratings/internal"
	"github.com/mikeb26/vttc-ratings/logstore"
)

const maxSaveBody = 1 << 20

// saveLogRequest is the body accepted by POST /Logs/Save.
type saveLogRequest struct {
	LogData        string `json:"logData"`
	Timestamp      string `json:"timestamp"`
	PlayerCount    int    `json:"playerCount"`
	MatchCount     int    `json:"matchCount"`
	SelectedPlayer string `json:"selectedPlayer"`
}

type saveLogResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type listLogsResponse struct {
	Success bool              `json:"success"`
	Logs    []logstore.Record `json:"logs"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// logsAPI exposes saved calculation logs to the club's web pages.
type logsAPI struct {
	store logstore.Store
}

func mountLogsAPI(mux *http.ServeMux, store logstore.Store) {
	api := &logsAPI{store: store}
	mux.HandleFunc("/Logs/Save", withCORS(http.MethodPost, api.save))
	mux.HandleFunc("/Logs/List", withCORS(http.MethodGet, api.list))
}

// withCORS answers preflight requests and rejects any method other than
// method before calling next.
func withCORS(method string, next http.HandlerFunc) http.HandlerFunc {
	allowed := strings.Join([]string{method, http.MethodOptions}, ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", allowed)

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		case method:
			next(w, r)
		default:
			writeJSON(w, http.StatusMethodNotAllowed,
				errorResponse{Error: "Method not allowed"})
		}
	}
}

func (api *logsAPI) save(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSaveBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Failed to read request",
			Details: err.Error(),
		})
		return
	}
	var req saveLogRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	timestamp, err := internal.ParseDateOrZero(req.Timestamp)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid timestamp",
			Details: err.Error(),
		})
		return
	}

	rec := &logstore.Record{
		Timestamp:      timestamp,
		PlayerCount:    req.PlayerCount,
		MatchCount:     req.MatchCount,
		SelectedPlayer: req.SelectedPlayer,
		LogData:        req.LogData,
	}
	id, err := api.store.Save(r.Context(), rec)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, logstore.ErrNoLogData) {
			status = http.StatusBadRequest
		}
		log.Printf("discordbot.logs: error saving log: %v", err)
		writeJSON(w, status, errorResponse{
			Error:   "Failed to save log",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, saveLogResponse{
		Success: true,
		ID:      id,
		Message: "Log saved successfully",
	})
}

func (api *logsAPI) list(w http.ResponseWriter, r *http.Request) {
	recs, err := api.store.List(r.Context())
	if err != nil {
		log.Printf("discordbot.logs: error fetching logs: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch logs",
			Details: err.Error(),
		})
		return
	}
	if recs == nil {
		recs = []logstore.Record{}
	}

	writeJSON(w, http.StatusOK, listLogsResponse{Success: true, Logs: recs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	rawResp, err := json.Marshal(v)
	if err != nil {
		log.Printf("discordbot.logs: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(rawResp); err != nil {
		log.Printf("discordbot.logs: failed to write resp: err:%v", err)
	}
}
