package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/elyashium/sylvan-web/middlewares"
	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Snapshot is the message pushed to every dashboard connection.
type Snapshot struct {
	Type     string                  `json:"type"`
	At       time.Time               `json:"at"`
	Readings []card                  `json:"readings"`
	Counts   map[models.Severity]int `json:"counts"`
}

type client struct {
	conn   *websocket.Conn
	userID uint
	mu     sync.Mutex // gorilla connections allow one writer at a time
}

func (cl *client) write(msg []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return cl.conn.WriteMessage(websocket.TextMessage, msg)
}

// Feed keeps the open dashboard websockets and refreshes them with the
// latest classified readings.
type Feed struct {
	data     store.Provider
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

// NewFeed accepts websocket upgrades from the listed origins; an empty list
// accepts any origin.
func NewFeed(data store.Provider, allowedOrigins []string, logger *slog.Logger) *Feed {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	f := &Feed{
		data:    data,
		logger:  logger,
		clients: make(map[*websocket.Conn]*client),
	}
	f.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(allowed) == 0 || origin == "" || allowed[origin]
		},
	}
	return f
}

func (f *Feed) snapshot(ctx context.Context) ([]byte, error) {
	readings, err := f.data.Readings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load readings: %w", err)
	}
	s := Snapshot{
		Type:     "snapshot",
		At:       time.Now().UTC(),
		Readings: newCards(readings),
		Counts:   map[models.Severity]int{},
	}
	for _, c := range s.Readings {
		s.Counts[c.Severity]++
	}
	return json.Marshal(s)
}

// HandleWebSocket upgrades the request and sends the current snapshot.
// The connection stays registered until the client goes away.
func (f *Feed) HandleWebSocket(c *gin.Context) {
	session, ok := middlewares.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{conn: conn, userID: session.User.ID}
	f.mu.Lock()
	f.clients[conn] = cl
	f.mu.Unlock()
	f.logger.Debug("websocket connected", "user_id", cl.userID)

	defer func() {
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
		conn.Close()
		f.logger.Debug("websocket disconnected", "user_id", cl.userID)
	}()

	if msg, err := f.snapshot(c.Request.Context()); err != nil {
		f.logger.Error("build snapshot", "error", err)
	} else if err := cl.write(msg); err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends msg to every connected client, dropping the ones that fail.
func (f *Feed) Broadcast(msg []byte) {
	f.mu.Lock()
	targets := make([]*client, 0, len(f.clients))
	for _, cl := range f.clients {
		targets = append(targets, cl)
	}
	f.mu.Unlock()

	for _, cl := range targets {
		if err := cl.write(msg); err != nil {
			f.logger.Debug("dropping websocket client", "user_id", cl.userID, "error", err)
			cl.conn.Close()
		}
	}
}

// Clients is the number of open connections.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Run pushes a fresh snapshot every interval until ctx is done.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if f.Clients() == 0 {
				continue
			}
			msg, err := f.snapshot(ctx)
			if err != nil {
				f.logger.Error("build snapshot", "error", err)
				continue
			}
			f.Broadcast(msg)
		}
	}
}
