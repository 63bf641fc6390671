package httpadapter

import (
	"net/http"

	"github.com/gorilla/websocket"

	"svw.info/battleship/internal/domain"
	"svw.info/battleship/internal/movelog"
	"svw.info/battleship/internal/usecase"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// wsMsg is the envelope of every message sent on /ws/solve.
type wsMsg struct {
	Type string `json:"type"` // "step", "done" or "error"
	Data any    `json:"data,omitempty"`
}

type stepMsg struct {
	usecase.Step
	Text string `json:"text"`
}

// handleStream reads solve requests ({size, moves}) from the socket and
// answers each one with a "step" message per applied move followed by
// "done" with the final result. A malformed request gets an "error"
// message; the connection stays open.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}
	defer conn.Close()

	for {
		var req solveReq
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if err := h.streamOne(r, conn, req); err != nil {
			return
		}
	}
}

func (h *Handler) streamOne(r *http.Request, conn *websocket.Conn, req solveReq) error {
	n, err := h.size(req.Size)
	if err != nil {
		return conn.WriteJSON(wsMsg{Type: "error", Data: err.Error()})
	}
	moves, err := movelog.ParseLines(n, req.Moves)
	if err != nil {
		return conn.WriteJSON(wsMsg{Type: "error", Data: err.Error()})
	}
	var writeErr error
	res, _, err := h.UC.Stream(r.Context(), n, moves, func(s usecase.Step) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(wsMsg{Type: "step", Data: stepMsg{Step: s, Text: movelog.FormatMove(n, s.Move)}})
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return conn.WriteJSON(wsMsg{Type: "error", Data: err.Error()})
	}
	return conn.WriteJSON(wsMsg{Type: "done", Data: doneMsg{Result: res}})
}

type doneMsg struct {
	Result domain.Result `json:"result"`
}
