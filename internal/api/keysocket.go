package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/snmishra/xcircuit-qt-sub002/internal/keybind"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 4 * 1024
)

// KeyMessage is sent by the client for every key press.
type KeyMessage struct {
	Key string `json:"key"`
}

// KeyReply names the function bound to a key, or carries an error.
type KeyReply struct {
	Key      string `json:"key"`
	Function string `json:"function,omitempty"`
	Value    int    `json:"value"`
	Bound    bool   `json:"bound"`
	Error    string `json:"error,omitempty"`
}

type keyClient struct {
	conn   *websocket.Conn
	keys   *keybind.Table
	window keybind.Window
	send   chan []byte
}

// KeySocket handles /ws/keys/{window}. Each text message is a KeyMessage;
// the reply is the binding in effect for that window.
func (s *Server) KeySocket(w http.ResponseWriter, r *http.Request) {
	win, err := uuid.Parse(mux.Vars(r)["window"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window id"})
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.Origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	c := &keyClient{conn: conn, keys: s.keys, window: win, send: make(chan []byte, 64)}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go c.writePump(ctx)
	c.readPump(ctx)
}

func (c *keyClient) readPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "window", c.window)
			return
		}

		var msg KeyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "window", c.window)
			c.reply(KeyReply{Error: "invalid message"})
			continue
		}
		c.reply(c.resolve(msg))
	}
}

func (c *keyClient) resolve(msg KeyMessage) KeyReply {
	ks, err := keybind.ParseKey(msg.Key)
	if err != nil {
		return KeyReply{Key: msg.Key, Error: err.Error()}
	}
	f, value := c.keys.BoundFunction(c.window, ks)
	reply := KeyReply{Key: ks.String(), Value: value, Bound: f != keybind.NoFunction}
	if reply.Bound {
		reply.Function = f.String()
	}
	return reply
}

func (c *keyClient) reply(r KeyReply) {
	data, err := json.Marshal(r)
	if err != nil {
		slog.Error("marshal reply", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		slog.Warn("key socket send buffer full, dropping reply", "window", c.window)
	}
}

func (c *keyClient) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "window", c.window)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
