package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	socketWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// socketSubscriber is a middleman between the websocket connection and the hub
type socketSubscriber struct {
	send chan []byte
}

func (s *socketSubscriber) writePump(ws *websocket.Conn) {
	defer ws.Close()

	for msg := range s.send {
		if err := ws.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// SocketHub maintains the set of active clients and broadcasts messages to the clients
type SocketHub struct {
	register    chan *socketSubscriber
	unregister  chan *socketSubscriber
	subscribers map[*socketSubscriber]bool
}

// NewSocketHub creates a web socket hub that distributes entity states
func NewSocketHub() *SocketHub {
	return &SocketHub{
		register:    make(chan *socketSubscriber),
		unregister:  make(chan *socketSubscriber),
		subscribers: make(map[*socketSubscriber]bool),
	}
}

func encode(v interface{}) (string, error) {
	var s string
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			s = "null"
		} else {
			s = fmt.Sprintf(`"%s"`, val.Format(time.RFC3339))
		}
	case time.Duration:
		// must be stripped of non-numeric characters
		s = fmt.Sprintf("%d", val/time.Second)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		s = string(b)
	}

	return s, nil
}

func kv(p util.Param) string {
	val, err := encode(p.Val)
	if err != nil {
		log.ERROR.Printf("socket: %s: %v", p.UniqueID(), err)
		val = "null"
	}

	return fmt.Sprintf("%q:%s", p.UniqueID(), val)
}

func (h *SocketHub) welcome(subscriber *socketSubscriber, params []util.Param) {
	var msg strings.Builder

	// send all values as single message
	msg.WriteString("{")
	for _, p := range params {
		if msg.Len() > 1 {
			msg.WriteString(",")
		}
		msg.WriteString(kv(p))
	}
	msg.WriteString("}")

	subscriber.send <- []byte(msg.String())
}

func (h *SocketHub) broadcast(p util.Param) {
	if len(h.subscribers) == 0 {
		return
	}

	msg := []byte("{" + kv(p) + "}")

	for client := range h.subscribers {
		select {
		case client.send <- msg:
		default:
			close(client.send)
			delete(h.subscribers, client)
		}
	}
}

// Run starts data and status distribution
func (h *SocketHub) Run(in <-chan util.Param, cache *util.Cache) {
	for {
		select {
		case client := <-h.register:
			h.subscribers[client] = true
			h.welcome(client, cache.All())
		case client := <-h.unregister:
			if _, ok := h.subscribers[client]; ok {
				delete(h.subscribers, client)
				close(client.send)
			}
		case msg, ok := <-in:
			if !ok {
				return
			}
			h.broadcast(msg)
		}
	}
}

// readPump discards client messages and unregisters the client once the connection is closed
func (h *SocketHub) readPump(client *socketSubscriber, conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.unregister <- client
			return
		}
	}
}

// ServeWebsocket handles websocket requests from the peer
func ServeWebsocket(hub *SocketHub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ERROR.Println(err)
		return
	}

	client := &socketSubscriber{send: make(chan []byte, 1024)}
	hub.register <- client

	go client.writePump(conn)
	go hub.readPump(client, conn)
}

func socketHandler(hub *SocketHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ServeWebsocket(hub, w, r)
	}
}
