package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/service"
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type liveClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// LiveHandler pushes room events to websocket subscribers. It implements
// service.Notifier, so the game service broadcasts through it without
// knowing about websockets.
type LiveHandler struct {
	svc GameService

	mu    sync.RWMutex
	rooms map[string]map[string]*liveClient // roomCode -> clientID -> client
}

func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		rooms: make(map[string]map[string]*liveClient),
	}
}

// BindService wires the game service after construction; the service itself
// holds this handler as its notifier, so one of the two has to be attached
// late.
func (h *LiveHandler) BindService(svc GameService) {
	h.svc = svc
}

// HandleLive godoc
// @Summary      Subscribe to room events
// @Description  Upgrades to a websocket that streams room events (player_joined, game_started, number_drawn, game_completed, winners_announced)
// @Tags         games
// @Produce      json
// @Param        roomCode  path      string  true  "Room code"
// @Success      101       {string}  string  "Switching Protocols to WebSocket"
// @Failure      404       {object}  response.Err
// @Router       /games/{roomCode}/live [get]
func (h *LiveHandler) HandleLive(ctx *gin.Context) {
	roomCode := ctx.Param("roomCode")

	if _, err := h.svc.GetGameState(ctx.Request.Context(), roomCode); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "roomCode", roomCode))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conn, err := liveUpgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register(roomCode, client)

	go client.writePump()
	go h.readPump(roomCode, client)
}

// Notify implements service.Notifier. Delivery is best-effort: subscribers
// that cannot keep up are dropped rather than blocking the game.
func (h *LiveHandler) Notify(roomCode string, event service.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal room event", zap.Error(err))
		return
	}

	var stale []*liveClient

	h.mu.RLock()
	for _, client := range h.rooms[roomCode] {
		select {
		case client.send <- payload:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister(roomCode, client)
	}
}

func (h *LiveHandler) register(roomCode string, client *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[string]*liveClient)
	}
	h.rooms[roomCode][client.id] = client
}

func (h *LiveHandler) unregister(roomCode string, client *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.rooms[roomCode]
	if !exists {
		return
	}

	if _, exists := clients[client.id]; exists {
		delete(clients, client.id)
		close(client.send)
	}
	if len(clients) == 0 {
		delete(h.rooms, roomCode)
	}
}

// readPump discards inbound messages; the live socket is one-way. It exists
// to detect the client closing the connection.
func (h *LiveHandler) readPump(roomCode string, client *liveClient) {
	defer func() {
		h.unregister(roomCode, client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *liveClient) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
