package housekeeping

import (
	"net/http"
	"time"

	"skynest/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RoomEvent is what housekeeping dashboards receive when a room or
// booking changes state.
type RoomEvent struct {
	Kind      string    `json:"kind"` // room_status | booking_status
	RoomID    int64     `json:"room_id,omitempty"`
	BookingID int64     `json:"booking_id,omitempty"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

type Handler struct {
	hub *Hub
	log *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/rooms", h.Subscribe)
}

// Subscribe upgrades the connection and keeps it open until the client
// goes away. The read loop only exists to detect disconnects; dashboards
// never send anything meaningful upstream.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := h.hub.Register(conn)
	h.log.Info("housekeeping subscriber connected", zap.Int64("conn_id", id))

	go func() {
		defer func() {
			h.hub.Unregister(id)
			h.log.Info("housekeeping subscriber disconnected", zap.Int64("conn_id", id))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyRoomStatus pushes a room state change to all dashboards.
func (h *Handler) NotifyRoomStatus(roomID int64, status domain.RoomStatus) {
	h.hub.Broadcast(RoomEvent{
		Kind:   "room_status",
		RoomID: roomID,
		Status: string(status),
		At:     time.Now().UTC(),
	})
}

// NotifyBookingStatus pushes a booking lifecycle change to all dashboards.
func (h *Handler) NotifyBookingStatus(bookingID int64, status domain.BookingStatus) {
	h.hub.Broadcast(RoomEvent{
		Kind:      "booking_status",
		BookingID: bookingID,
		Status:    string(status),
		At:        time.Now().UTC(),
	})
}
