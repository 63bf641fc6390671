package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/generator"
	"svw.info/battleship/internal/infrastructure/storage"
	"svw.info/battleship/internal/usecase"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	uc := usecase.NewService(nil, storage.NewFS(t.TempDir()))
	uc.Generator = generator.NewRandomGenerator(uc)
	r := mux.NewRouter()
	New(uc, 5).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestSolveEndpoint(t *testing.T) {
	srv := newServer(t)
	var resp solveResp
	code := postJSON(t, srv.URL+"/api/solve", solveReq{Moves: []string{"A1"}}, &resp)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, resp.Error)
	}
	if got := resp.Result.Remaining(domain.Patrol); got != 38 {
		t.Fatalf("patrol remaining = %d, want 38", got)
	}
	if resp.Heatmap[0][0] != 0 {
		t.Fatalf("missed cell still covered: %d", resp.Heatmap[0][0])
	}
	if resp.Removed != 2*domain.NumShipTypes {
		t.Fatalf("removed = %d", resp.Removed)
	}
}

func TestSolveRejectsMalformedLog(t *testing.T) {
	srv := newServer(t)
	var resp solveResp
	code := postJSON(t, srv.URL+"/api/solve", solveReq{Moves: []string{"A1", "Z9"}}, &resp)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if !strings.Contains(resp.Error, "line 2") {
		t.Fatalf("error %q does not name line 2", resp.Error)
	}
}

func TestFleetPlacementOverlap(t *testing.T) {
	srv := newServer(t)

	var fleet fleetResp
	if code := getJSON(t, srv.URL+"/api/fleet?size=10", &fleet); code != http.StatusOK {
		t.Fatalf("fleet status %d", code)
	}
	if len(fleet.Fleet) != domain.NumShipTypes || fleet.Fleet[4].Placements != 120 {
		t.Fatalf("fleet = %+v", fleet)
	}

	var pl placementResp
	if code := getJSON(t, srv.URL+"/api/placement/C/71?size=10", &pl); code != http.StatusOK {
		t.Fatalf("placement status %d: %s", code, pl.Error)
	}
	if strings.Join(pl.Cells, " ") != "B2 C2 D2 E2 F2" || !pl.Placement.Vertical {
		t.Fatalf("placement = %+v %v", pl.Placement, pl.Cells)
	}

	var ov overlapResp
	if code := getJSON(t, srv.URL+"/api/overlap?size=10&a=carrier&p=71&b=P&q=9", &ov); code != http.StatusOK {
		t.Fatalf("overlap status %d: %s", code, ov.Error)
	}
	if !ov.Overlaps {
		t.Fatalf("carrier 71 and patrol 9 should overlap")
	}

	if code := getJSON(t, srv.URL+"/api/placement/P/40", &pl); code != http.StatusBadRequest {
		t.Fatalf("out-of-range placement status = %d, want 400", code)
	}
}

func TestRunsRoundTrip(t *testing.T) {
	srv := newServer(t)
	var saved saveResp
	code := postJSON(t, srv.URL+"/api/runs", domain.Run{Name: "demo", Moves: []string{"A1P"}}, &saved)
	if code != http.StatusCreated || saved.ID == "" {
		t.Fatalf("save status %d: %+v", code, saved)
	}

	var loaded loadResp
	if code := getJSON(t, srv.URL+"/api/runs/"+saved.ID, &loaded); code != http.StatusOK {
		t.Fatalf("load status %d: %s", code, loaded.Error)
	}
	if loaded.Run.Result == nil || loaded.Run.Result.Remaining(domain.Patrol) != 2 {
		t.Fatalf("loaded run = %+v", loaded.Run)
	}

	var list listResp
	if code := getJSON(t, srv.URL+"/api/runs", &list); code != http.StatusOK || len(list.Runs) != 1 {
		t.Fatalf("list status %d: %+v", code, list)
	}

	if code := getJSON(t, srv.URL+"/api/runs/missing", &loaded); code != http.StatusNotFound {
		t.Fatalf("missing run status = %d, want 404", code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newServer(t)
	var resp generateResp
	code := postJSON(t, srv.URL+"/api/generate", generateReq{Seed: 3, Shots: 10}, &resp)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, resp.Error)
	}
	if len(resp.Moves) != 10 || len(resp.Fleet) != domain.NumShipTypes {
		t.Fatalf("generated %+v", resp)
	}
}

func TestStreamSolve(t *testing.T) {
	srv := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/solve"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(solveReq{Moves: []string{"A1P", "C3"}}); err != nil {
		t.Fatal(err)
	}
	var types []string
	for {
		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		types = append(types, msg.Type)
		if msg.Type == "step" && len(types) == 1 {
			var s stepMsg
			if err := json.Unmarshal(msg.Data, &s); err != nil {
				t.Fatal(err)
			}
			if s.Text != "A1P" || s.Left[domain.Patrol] != 2 {
				t.Fatalf("first step = %+v", s)
			}
		}
		if msg.Type != "step" {
			break
		}
	}
	if strings.Join(types, ",") != "step,step,done" {
		t.Fatalf("message types = %v", types)
	}

	// a bad request keeps the socket open
	if err := conn.WriteJSON(solveReq{Moves: []string{"??"}}); err != nil {
		t.Fatal(err)
	}
	var msg wsMsg
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "error" {
		t.Fatalf("got %+v, %v; want error message", msg, err)
	}
}
