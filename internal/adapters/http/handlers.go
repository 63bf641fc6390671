package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/movelog"
	"svw.info/battleship/internal/report"
	"svw.info/battleship/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
	// DefaultSize is used when a request does not name a board size.
	DefaultSize int
}

func New(uc *usecase.Service, defaultSize int) *Handler {
	return &Handler{UC: uc, DefaultSize: defaultSize}
}

func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fleet", h.handleFleet).Methods(http.MethodGet)
	api.HandleFunc("/solve", h.handleSolve).Methods(http.MethodPost)
	api.HandleFunc("/generate", h.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/placement/{ship}/{index:[0-9]+}", h.handlePlacement).Methods(http.MethodGet)
	api.HandleFunc("/overlap", h.handleOverlap).Methods(http.MethodGet)
	api.HandleFunc("/runs", h.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/runs", h.handleList).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", h.handleLoad).Methods(http.MethodGet)
	r.HandleFunc("/ws/solve", h.handleStream)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedMove),
		errors.Is(err, domain.ErrPosRange),
		errors.Is(err, domain.ErrPlacementRange),
		errors.Is(err, domain.ErrUnknownShipType),
		errors.Is(err, domain.ErrBoardSize),
		errors.Is(err, domain.ErrBoardTooSmall):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *Handler) sizeParam(r *http.Request) (int, error) {
	s := r.URL.Query().Get("size")
	if s == "" {
		return h.DefaultSize, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrBoardSize
	}
	return n, nil
}

func (h *Handler) size(n int) (int, error) {
	if n == 0 {
		n = h.DefaultSize
	}
	if n < 0 || n > movelog.MaxBoardSize {
		return 0, domain.ErrBoardSize
	}
	return n, nil
}

// ---- Fleet ----

type fleetEntry struct {
	Ship       domain.ShipType `json:"ship"`
	Letter     string          `json:"letter"`
	Size       int             `json:"size"`
	Placements int             `json:"placements"`
}

type fleetResp struct {
	BoardSize int          `json:"boardSize"`
	Fleet     []fleetEntry `json:"fleet"`
}

func (h *Handler) handleFleet(w http.ResponseWriter, r *http.Request) {
	n, err := h.sizeParam(r)
	if err == nil {
		n, err = h.size(n)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: err.Error()})
		return
	}
	e, _, err := h.UC.Tables(r.Context(), n)
	if err != nil {
		writeJSON(w, statusFor(err), errResp{Error: err.Error()})
		return
	}
	fleet := lo.Map(domain.AllShipTypes(), func(t domain.ShipType, _ int) fleetEntry {
		return fleetEntry{Ship: t, Letter: string(t.Letter()), Size: t.Size(), Placements: e.NumPlacements(t)}
	})
	writeJSON(w, http.StatusOK, fleetResp{BoardSize: n, Fleet: fleet})
}

// ---- Solve ----

type solveReq struct {
	Size  int      `json:"size,omitempty"`
	Moves []string `json:"moves"`
}

type solveResp struct {
	Result     *domain.Result      `json:"result,omitempty"`
	Heatmap    [][]int             `json:"heatmap,omitempty"`
	Conflicts  []report.PairStatus `json:"conflicts,omitempty"`
	DurationMs int64               `json:"durationMs"`
	Removed    int                 `json:"removed"`
	Error      string              `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	n, err := h.size(req.Size)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: err.Error()})
		return
	}
	moves, err := movelog.ParseLines(n, req.Moves)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: err.Error()})
		return
	}
	res, st, err := h.UC.Solve(r.Context(), n, moves)
	if err != nil {
		writeJSON(w, statusFor(err), solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds()})
		return
	}
	e, tab, err := h.UC.Tables(r.Context(), n)
	if err != nil {
		writeJSON(w, statusFor(err), solveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{
		Result:     &res,
		Heatmap:    report.Heatmap(e, res),
		Conflicts:  report.Conflicts(report.Feasibility(tab, res)),
		DurationMs: st.Duration.Milliseconds(),
		Removed:    st.Removed,
	})
}

// ---- Generate ----

type generateReq struct {
	Size  int   `json:"size,omitempty"`
	Seed  int64 `json:"seed,omitempty"`
	Shots int   `json:"shots,omitempty"`
}

type generateResp struct {
	Seed  int64                   `json:"seed,omitempty"`
	Fleet map[domain.ShipType]int `json:"fleet,omitempty"`
	Moves []string                `json:"moves,omitempty"`
	Error string                  `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	n, err := h.size(req.Size)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := h.UC.Generate(r.Context(), seed, n, req.Shots)
	if err != nil {
		writeJSON(w, statusFor(err), generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{Seed: seed, Fleet: g.Fleet, Moves: movelog.Format(n, g.Moves)})
}

// ---- Placement / Overlap ----

type placementResp struct {
	Placement *domain.Placement `json:"placement,omitempty"`
	Cells     []string          `json:"cells,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func (h *Handler) handlePlacement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	t, err := domain.ParseShipName(vars["ship"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, placementResp{Error: err.Error()})
		return
	}
	idx, _ := strconv.Atoi(vars["index"])
	n, err := h.sizeParam(r)
	if err == nil {
		n, err = h.size(n)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, placementResp{Error: err.Error()})
		return
	}
	p, err := h.UC.Placement(r.Context(), n, t, idx)
	if err != nil {
		writeJSON(w, statusFor(err), placementResp{Error: err.Error()})
		return
	}
	cells := lo.Map(p.Cells, func(c domain.BoardPos, _ int) string { return movelog.FormatPos(n, c) })
	writeJSON(w, http.StatusOK, placementResp{Placement: &p, Cells: cells})
}

type overlapResp struct {
	Overlaps bool   `json:"overlaps"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleOverlap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, errA := domain.ParseShipName(q.Get("a"))
	b, errB := domain.ParseShipName(q.Get("b"))
	p1, errP := strconv.Atoi(q.Get("p"))
	p2, errQ := strconv.Atoi(q.Get("q"))
	n, errN := h.sizeParam(r)
	if err := errors.Join(errA, errB, errP, errQ, errN); err != nil {
		writeJSON(w, http.StatusBadRequest, overlapResp{Error: err.Error()})
		return
	}
	n, err := h.size(n)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, overlapResp{Error: err.Error()})
		return
	}
	ok, err := h.UC.Overlaps(r.Context(), n, a, p1, b, p2)
	if err != nil {
		writeJSON(w, statusFor(err), overlapResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, overlapResp{Overlaps: ok})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleSave solves the posted log before storing it, so a stored run always
// carries its result.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var run domain.Run
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	n, err := h.size(run.BoardSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: err.Error()})
		return
	}
	run.BoardSize = n
	moves, err := movelog.ParseLines(n, run.Moves)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: err.Error()})
		return
	}
	res, _, err := h.UC.Solve(r.Context(), n, moves)
	if err != nil {
		writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
		return
	}
	run.Result = &res
	if err := h.UC.Save(r.Context(), &run); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, saveResp{ID: run.ID})
}

type loadResp struct {
	Run   *domain.Run `json:"run,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	run, err := h.UC.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, statusFor(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Run: run})
}

type listResp struct {
	Runs  []domain.RunMeta `json:"runs"`
	Error string           `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	runs, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Runs: runs})
}
