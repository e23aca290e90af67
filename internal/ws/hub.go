package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/d7708945/scammail/internal/metrics"
	"github.com/d7708945/scammail/internal/models"
)

// Hub 维护信息流的全部订阅连接，新消息经 broadcast 通道扇出。
// 订阅是只读的：客户端只收推送，不经由 WebSocket 写入消息。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	online     int32
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
	go h.run()
	return h
}

// Event 是推送给订阅者的消息形态，字段与 REST 读接口保持一致。
type Event struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"ts"`
}

// Broadcast 把一条已接受的消息推送给所有订阅者。
// 扇出通道满时直接丢弃本次推送，绝不阻塞写路径；REST 读接口仍是事实来源。
func (h *Hub) Broadcast(m models.Message) {
	b, err := json.Marshal(Event{Type: "message", ID: m.ID, UserID: m.UserID, Text: m.Text, Timestamp: m.Timestamp})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- b:
	default:
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			atomic.StoreInt32(&h.online, int32(len(h.clients)))
			metrics.WsConnections.Inc()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				atomic.StoreInt32(&h.online, int32(len(h.clients)))
				metrics.WsConnections.Dec()
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
					atomic.StoreInt32(&h.online, int32(len(h.clients)))
					metrics.WsConnections.Dec()
				}
			}
		}
	}
}

// Online 返回当前订阅连接数。
func (h *Hub) Online() int { return int(atomic.LoadInt32(&h.online)) }
