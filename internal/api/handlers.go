package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/birdrush/birdrush/internal/engine"
)

const (
	maxPlayerName = 20
	maxScore      = 9999
	defaultLimit  = 10
	maxLimit      = 50
	defaultPlayer = "Anonymous"
)

type saveScoreRequest struct {
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	GameMode   string `json:"game_mode"`
}

type scoreResponse struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	GameMode   string    `json:"game_mode"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

type recordGameRequest struct {
	Score      int    `json:"score"`
	GameMode   string `json:"game_mode"`
	PlayTimeMS int64  `json:"play_time_ms"`
}

type modeMetricsResponse struct {
	GamesPlayed int     `json:"games_played"`
	HighScore   int     `json:"high_score"`
	AvgScore    float64 `json:"avg_score"`
	TotalScore  int64   `json:"total_score"`
}

type metricsResponse struct {
	TotalGames        int                            `json:"total_games"`
	TotalPlayMS       int64                          `json:"total_play_ms"`
	LongestSurvivalMS int64                          `json:"longest_survival_ms"`
	Modes             map[string]modeMetricsResponse `json:"modes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleSaveScore records one finished run: POST /api/scores.
func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		name = defaultPlayer
	}
	if runes := []rune(name); len(runes) > maxPlayerName {
		name = string(runes[:maxPlayerName])
	}

	if req.Score < 0 || req.Score > maxScore {
		writeError(w, http.StatusBadRequest, "score must be between 0 and 9999")
		return
	}
	if !engine.IsValidModeID(req.GameMode) {
		writeError(w, http.StatusBadRequest, "unknown game mode: "+req.GameMode)
		return
	}

	id, err := s.store.SaveScore(name, req.GameMode, req.Score)
	if err != nil {
		s.logger.Error("save score failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusCreated, scoreResponse{
		ID:         id,
		PlayerName: name,
		GameMode:   req.GameMode,
		Score:      req.Score,
	})
}

// handleTopScores lists the best runs for a mode: GET /api/scores?mode=&limit=.
func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if !engine.IsValidModeID(mode) {
		writeError(w, http.StatusBadRequest, "unknown game mode: "+mode)
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	entries, err := s.store.TopScores(mode, limit)
	if err != nil {
		s.logger.Error("query scores failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	out := make([]scoreResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreResponse{
			ID:         e.ID,
			PlayerName: e.PlayerName,
			GameMode:   e.Mode,
			Score:      e.Score,
			CreatedAt:  e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleMetrics reports the aggregate counters: GET /api/metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.AllMetrics()
	if err != nil {
		s.logger.Error("query metrics failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	resp := metricsResponse{Modes: make(map[string]modeMetricsResponse)}
	for mode, m := range all {
		resp.TotalGames += m.GamesPlayed
		resp.TotalPlayMS += m.TotalPlayMS
		if m.LongestSurvivalMS > resp.LongestSurvivalMS {
			resp.LongestSurvivalMS = m.LongestSurvivalMS
		}
		resp.Modes[mode] = modeMetricsResponse{
			GamesPlayed: m.GamesPlayed,
			HighScore:   m.HighScore,
			AvgScore:    m.AvgScore(),
			TotalScore:  m.TotalScore,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRecordGame folds one finished run into the metrics: POST /api/metrics.
func (s *Server) handleRecordGame(w http.ResponseWriter, r *http.Request) {
	var req recordGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must be non-negative")
		return
	}
	if req.PlayTimeMS < 0 {
		writeError(w, http.StatusBadRequest, "play_time_ms must be non-negative")
		return
	}
	if !engine.IsValidModeID(req.GameMode) {
		writeError(w, http.StatusBadRequest, "unknown game mode: "+req.GameMode)
		return
	}

	playTime := time.Duration(req.PlayTimeMS) * time.Millisecond
	if err := s.store.RecordGame(req.GameMode, req.Score, playTime); err != nil {
		s.logger.Error("record game failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
