package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// eventSendBuffer 每个客户端的发送缓冲，满时丢弃新事件
	eventSendBuffer = 64

	eventWriteWait  = 10 * time.Second
	eventPongWait   = 60 * time.Second
	eventPingPeriod = eventPongWait * 9 / 10
)

// event 推送给 websocket 客户端的通知
type event struct {
	Time      time.Time `json:"time"`
	Kind      string    `json:"kind"`
	Available *bool     `json:"available,omitempty"`
}

// eventHub 将网络变化通知广播给 /events 上的 websocket 客户端
type eventHub struct {
	mu      sync.RWMutex
	clients map[*eventClient]struct{}
	closed  bool
}

type eventClient struct {
	hub  *eventHub
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// 只读事件流，不区分来源
		return true
	},
}

func newEventHub() *eventHub {
	return &eventHub{clients: make(map[*eventClient]struct{})}
}

// ServeHTTP 升级连接并注册客户端
func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket 升级失败", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &eventClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, eventSendBuffer),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *eventHub) register(c *eventClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	logger.Debug("事件客户端已连接", "clients", len(h.clients))
	return true
}

// unregister 只有成功移除的一方关闭 send，避免重复关闭
func (h *eventHub) unregister(c *eventClient) {
	h.mu.Lock()
	_, existed := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if existed {
		close(c.send)
	}
}

// publish 广播事件，不阻塞通知回调
func (h *eventHub) publish(ev event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error("序列化事件失败", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logger.Warn("事件客户端过慢，丢弃事件", "remote", c.conn.RemoteAddr().String())
		}
	}
}

func (h *eventHub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close 断开所有客户端
func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// readPump 丢弃客户端消息，只用于检测断开和处理 pong
func (c *eventClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(eventPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(eventPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("事件客户端读取失败", "error", err)
			}
			return
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(eventPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
