package api

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereceipt/template-studio/internal/command"
	"github.com/thereceipt/template-studio/internal/document"
	"github.com/thereceipt/template-studio/internal/draft"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// WebSocket message types
const (
	EventCommand       = "command"
	EventResult        = "result"
	EventDocument      = "document"
	EventTemplateSaved = "template_saved"
	EventError         = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// WSClient is one connected editing session. Each connection gets its
// own draft controller; sessions never share document state.
type WSClient struct {
	conn       *websocket.Conn
	send       chan WSMessage
	server     *Server
	controller *draft.Controller
	executor   *command.Executor
	mu         sync.Mutex
}

// handleWebSocket opens an editing session over a WebSocket connection.
// Query parameters select the starting document: template_id resumes a
// saved template, kind/mode start a fresh draft, starter=true seeds the
// default layout.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	controller, err := s.openSession(c)
	if err != nil {
		conn.WriteJSON(WSMessage{Event: EventError, Data: map[string]any{"error": err.Error()}})
		conn.Close()
		return
	}

	client := &WSClient{
		conn:       conn,
		send:       make(chan WSMessage, 256),
		server:     s,
		controller: controller,
		executor:   command.NewExecutor(controller),
	}

	s.log.Info("editing session connected")

	go client.readPump()
	go client.writePump()

	// The client starts from the current document state
	client.sendDocument()
}

func (s *Server) openSession(c *gin.Context) (*draft.Controller, error) {
	if id := c.Query("template_id"); id != "" {
		saved, err := s.store.Load(id)
		if err != nil {
			return nil, err
		}
		return draft.NewFromSaved(document.FromSnapshot(saved), s.store), nil
	}

	kind := c.Query("kind")
	if kind == "" {
		kind = templatedoc.KindInvoice
	}
	mode := c.Query("mode")
	if mode == "" {
		mode = templatedoc.ModeLinear
	}

	if c.Query("starter") == "true" && mode == templatedoc.ModeLinear {
		return draft.New(document.NewStarter(kind), s.store), nil
	}
	return draft.New(document.New(kind, mode), s.store), nil
}

func (c *WSClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(msg)
		c.mu.Unlock()

		if err != nil {
			c.server.log.WithError(err).Debug("WebSocket write error")
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		removeClient(c)
		c.conn.Close()
		c.server.log.Info("editing session disconnected")
	}()

	addClient(c)

	for {
		var msg WSMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.WithError(err).Debug("WebSocket error")
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *WSClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventCommand:
		cmdStr, ok := msg.Data["command"].(string)
		if !ok || cmdStr == "" {
			c.sendError("command is required")
			return
		}
		c.handleCommand(cmdStr)
	default:
		c.sendError("unknown event: " + msg.Event)
	}
}

func (c *WSClient) handleCommand(cmdStr string) {
	result := c.executor.Execute(context.Background(), cmdStr)

	data := map[string]any{"success": result.Success}
	if result.Message != "" {
		data["message"] = result.Message
	}
	if result.Error != "" {
		data["error"] = result.Error
	}
	for k, v := range result.Data {
		data[k] = v
	}
	c.send <- WSMessage{Event: EventResult, Data: data}

	if result.Success {
		c.sendDocument()
	}

	// A successful save is visible to every session's template list
	if result.Success && strings.HasPrefix(strings.TrimSpace(cmdStr), "save") {
		if name := c.controller.Document().Name(); name != "" {
			c.server.broadcastTemplateSaved(name)
		}
	}
}

// sendDocument pushes the full editing state so the client can redraw
func (c *WSClient) sendDocument() {
	doc := c.controller.Document()
	c.send <- WSMessage{
		Event: EventDocument,
		Data: map[string]any{
			"document":  doc.Snapshot(),
			"trash":     doc.Trash(),
			"selection": doc.Selection(),
			"state":     string(c.controller.State()),
			"pending":   string(c.controller.Pending()),
			"closed":    c.controller.Closed(),
		},
	}
}

func (c *WSClient) sendError(message string) {
	c.send <- WSMessage{
		Event: EventError,
		Data: map[string]any{
			"error": message,
		},
	}
}

// Client tracking for broadcasts
var (
	clients   = make(map[*WSClient]bool)
	clientsMu sync.RWMutex
)

func addClient(client *WSClient) {
	clientsMu.Lock()
	clients[client] = true
	clientsMu.Unlock()
}

func removeClient(client *WSClient) {
	clientsMu.Lock()
	delete(clients, client)
	clientsMu.Unlock()
}

// broadcastTemplateSaved notifies all connected sessions that the saved
// template list changed
func (s *Server) broadcastTemplateSaved(name string) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	message := WSMessage{
		Event: EventTemplateSaved,
		Data: map[string]any{
			"name": name,
		},
	}

	for client := range clients {
		select {
		case client.send <- message:
		default:
			// Client send buffer full, skip
		}
	}
}
