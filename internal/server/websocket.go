package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// wsHub fans match snapshots out to every scoreboard display watching a
// match.
type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[matchID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[matchID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.groups[matchID]; ok {
		delete(group, conn)
		if len(group) == 0 {
			delete(h.groups, matchID)
		}
	}
	_ = conn.Close()
}

func (h *wsHub) Broadcast(matchID string, payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.groups[matchID]))
	for conn := range h.groups[matchID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	if len(conns) == 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(matchID, conn)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Kiosk tablets hit the server by LAN address; origin checks
		// would only get in the way on a closed network.
		return true
	},
}

func (s *Server) handleMatchWebsocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if _, ok := s.store.GetMatch(matchID); !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed match_id=%s error=%v", matchID, err)
		return
	}
	s.hub.Add(matchID, conn)
	s.sendSnapshot(matchID, conn)

	// Reads are only needed to notice the peer going away.
	go func() {
		defer s.hub.Remove(matchID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) sendSnapshot(matchID string, conn *websocket.Conn) {
	var snapshot map[string]any
	_, err := s.store.UpdateMatch(matchID, func(m *Match) error {
		snapshot = buildMatchSnapshot(m)
		return nil
	})
	if err != nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.hub.Remove(matchID, conn)
	}
}
