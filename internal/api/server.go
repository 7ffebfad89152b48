package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/formlab/xresult/internal/logger"
	"github.com/formlab/xresult/pkg/xr"
)

// APIHandler serves a completed prediction batch over HTTP. The batch
// is an immutable snapshot; rerun the engine and rebuild the handler to
// pick up new data.
type APIHandler struct {
	predictions []*xr.Prediction
	history     []*xr.MatchRecord
	generatedAt time.Time
}

// NewAPIHandler creates a handler over a finished batch
func NewAPIHandler(predictions []*xr.Prediction, history []*xr.MatchRecord, generatedAt time.Time) *APIHandler {
	return &APIHandler{
		predictions: predictions,
		history:     history,
		generatedAt: generatedAt,
	}
}

// SetupRoutes configures the HTTP routes
func (h *APIHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/api/matches", h.handleMatches).Methods("GET")
	r.HandleFunc("/api/predictions", h.handlePredictions).Methods("GET")
	r.HandleFunc("/api/predictions/{id}", h.handlePrediction).Methods("GET")

	return r
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"generatedAt": h.generatedAt,
		"matches":     len(h.history),
		"predictions": len(h.predictions),
	})
}

func (h *APIHandler) handleMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.history)
}

func (h *APIHandler) handlePredictions(w http.ResponseWriter, r *http.Request) {
	out := make([]*xr.Prediction, 0, len(h.predictions))
	for _, p := range h.predictions {
		out = append(out, presentable(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *APIHandler) handlePrediction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, p := range h.predictions {
		if p.FixtureID == id {
			writeJSON(w, http.StatusOK, presentable(p))
			return
		}
	}
	http.Error(w, "prediction not found", http.StatusNotFound)
}

// presentable applies the visibility gate. A played fixture is always
// shown in full; an upcoming fixture outside its window keeps only its
// identity and schedule, with every modeled number withheld.
func presentable(p *xr.Prediction) *xr.Prediction {
	if p.ShowPrediction || p.ActualHomeGoals != -1 {
		return p
	}

	redacted := &xr.Prediction{
		FixtureID:    p.FixtureID,
		KickoffUTC:   p.KickoffUTC,
		Season:       p.Season,
		HomeID:       p.HomeID,
		AwayID:       p.AwayID,
		HomeTeamName: p.HomeTeamName,
		AwayTeamName: p.AwayTeamName,

		BaseXGHome: -1.0,
		BaseXGAway: -1.0,
		XGHome:     -1.0,
		XGAway:     -1.0,
		HomeWinPct: -1.0,
		DrawPct:    -1.0,
		AwayWinPct: -1.0,
		XPtsHome:   -1.0,
		XPtsAway:   -1.0,

		MostLikelyHomeGoals: -1,
		MostLikelyAwayGoals: -1,

		HoursUntilKickoff: p.HoursUntilKickoff,
		ShowPrediction:    false,

		ActualHomeGoals: -1,
		ActualAwayGoals: -1,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	return redacted
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", err)
	}
}

// Serve starts the HTTP server on the given address and blocks
func (h *APIHandler) Serve(addr string) error {
	logger.Info("API server listening", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      h.SetupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
