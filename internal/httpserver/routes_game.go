// internal/httpserver/routes_game.go
//
// HTTP routes for playing.
//   - POST /game/new      → start (or resume) a daily or random game
//   - POST /game/guess    → submit a guess by player name
//   - GET  /game/{id}     → current board for one of the caller's games
//   - GET  /stats/me      → per-mode statistics for the caller
//   - GET  /players/search → autocomplete suggestions (public)

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trongtricoder/Footy-Feud/internal/game"
	"github.com/trongtricoder/Footy-Feud/internal/play"
	"github.com/trongtricoder/Footy-Feud/internal/store"
)

const maxSearchLimit = 50

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Get("/stats/me", s.handleStats)
}

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "daily" | "random"; empty means daily
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Mode == "" {
		req.Mode = string(game.ModeDaily)
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	sess, err := s.play.Start(r.Context(), s.userKey(w, r), mode)
	if err != nil {
		s.log.Error().Err(err).Str("mode", string(mode)).Msg("start game")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Verdict    game.Verdict  `json:"verdict"`
	Status     game.Status   `json:"status"`
	Attempt    int           `json:"attempt"`
	Remaining  int           `json:"remaining"`
	StatsSaved bool          `json:"statsSaved"`
	Game       game.Snapshot `json:"game"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" || strings.TrimSpace(req.Guess) == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}

	sess, out, err := s.play.Guess(r.Context(), s.userKey(w, r), req.GameID, req.Guess)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{
		Verdict:    out.Verdict,
		Status:     out.Status,
		Attempt:    out.Attempt,
		Remaining:  out.Remaining,
		StatsSaved: out.PersistErr == nil,
		Game:       sess.Snapshot(),
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.play.Session(r.Context(), s.userKey(w, r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.play.Stats(r.Context(), s.userKey(w, r))
	if err != nil {
		s.log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "stats_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": summaries})
}

// handleSearch returns up to limit players whose name contains q,
// or a random sample when q is empty.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxSearchLimit)
	}
	found := s.play.Roster().Search(r.URL.Query().Get("q"), limit)
	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, p.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": names})
}

// writeGameError maps game and store errors onto status codes.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusUnprocessableEntity, "player_not_found")
	case errors.Is(err, game.ErrDuplicateGuess):
		writeError(w, http.StatusConflict, "duplicate_guess")
	case errors.Is(err, game.ErrAlreadyTerminal):
		writeError(w, http.StatusConflict, "game_finished")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "game_not_found")
	case errors.Is(err, play.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		s.log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

