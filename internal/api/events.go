package api

import (
	"net/http"
	"sync"

	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is same-origin in production; dev clients connect from the
	// frontend dev server.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventHub pushes combat events to websocket clients, keyed by battle
// code. It implements game.Observer so it can be subscribed directly to
// the publisher the combat components emit on.
type EventHub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]bool
}

func NewEventHub() *EventHub {
	return &EventHub{clients: map[string]map[*websocket.Conn]bool{}}
}

// Notify fans the event out to every client watching its battle. Slow or
// broken connections are dropped.
func (h *EventHub) Notify(e game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[e.BattleCode] {
		if err := conn.WriteJSON(e); err != nil {
			conn.Close()
			delete(h.clients[e.BattleCode], conn)
		}
	}
}

func (h *EventHub) add(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[code] == nil {
		h.clients[code] = map[*websocket.Conn]bool{}
	}
	h.clients[code][conn] = true
}

func (h *EventHub) remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[code], conn)
}

// Subscribe upgrades the request to a websocket and streams the battle's
// events until the client disconnects.
func (h *BattleHandler) Subscribe(hub *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, ok := h.battleCode(c)
		if !ok {
			return
		}
		if _, err := h.repo.FindBattleByJoinCode(code); err != nil {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Warn("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleCode: code})
			return
		}
		hub.add(code, conn)
		logging.Debug("event subscriber connected", logging.Fields{constants.LogFieldBattleCode: code})

		// Reads only drain control frames; the hub owns all writes.
		go func() {
			defer func() {
				hub.remove(code, conn)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
