package ws

import (
    "encoding/json"
    "log"
    "time"

    "github.com/gorilla/websocket"

    "github.com/zaqqye/classroom_backend/internal/models"
)

const (
    writeWait      = 10 * time.Second
    pongWait       = 60 * time.Second
    pingPeriod     = (pongWait * 9) / 10
    sendBufferSize = 256
)

// Event frame types pushed to subscribed clients.
const (
    EventMessageCreated      = "message.created"
    EventAnnouncementsChange = "announcements.changed"
    EventScheduleChange      = "schedule.changed"
)

// Event is one change-notification frame. Message events carry the full
// record so clients can append without refetching the window; the coarse
// collection events carry only the type and clients re-fetch the list.
type Event struct {
    Type    string          `json:"type"`
    Message *models.Message `json:"message,omitempty"`
}

// Hub fans change events out to every connected portal client.
type Hub struct {
    register   chan *client
    unregister chan *client
    broadcast  chan []byte
    clients    map[*client]struct{}
}

func NewHub() *Hub {
    return &Hub{
        register:   make(chan *client),
        unregister: make(chan *client),
        broadcast:  make(chan []byte, 256),
        clients:    make(map[*client]struct{}),
    }
}

func (h *Hub) Run() {
    for {
        select {
        case client := <-h.register:
            h.clients[client] = struct{}{}
        case client := <-h.unregister:
            if _, ok := h.clients[client]; ok {
                delete(h.clients, client)
                close(client.send)
                client.conn.Close()
            }
        case msg := <-h.broadcast:
            for client := range h.clients {
                select {
                case client.send <- msg:
                default:
                    delete(h.clients, client)
                    close(client.send)
                    client.conn.Close()
                }
            }
        }
    }
}

// Broadcast pushes an event to all connected clients.
func (h *Hub) Broadcast(event Event) {
    if h == nil {
        return
    }
    data, err := json.Marshal(event)
    if err != nil {
        log.Printf("ws: failed to marshal event: %v", err)
        return
    }
    h.broadcast <- data
}

type client struct {
    hub  *Hub
    conn *websocket.Conn
    send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *client {
    return &client{
        hub:  hub,
        conn: conn,
        send: make(chan []byte, sendBufferSize),
    }
}

func (c *client) readPump() {
    defer func() {
        c.hub.unregister <- c
    }()
    c.conn.SetReadLimit(512)
    c.conn.SetReadDeadline(time.Now().Add(pongWait))
    c.conn.SetPongHandler(func(string) error {
        c.conn.SetReadDeadline(time.Now().Add(pongWait))
        return nil
    })
    for {
        if _, _, err := c.conn.ReadMessage(); err != nil {
            break
        }
    }
}

func (c *client) writePump() {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        c.conn.Close()
    }()
    for {
        select {
        case msg, ok := <-c.send:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if !ok {
                c.conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            w, err := c.conn.NextWriter(websocket.TextMessage)
            if err != nil {
                return
            }
            if _, err := w.Write(msg); err != nil {
                return
            }
            if err := w.Close(); err != nil {
                return
            }
        case <-ticker.C:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}
