// Package api handles HTTP and WebSocket API endpoints
package api

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/thereceipt/template-studio/internal/catalog"
	"github.com/thereceipt/template-studio/internal/money"
	"github.com/thereceipt/template-studio/internal/preset"
	"github.com/thereceipt/template-studio/internal/render"
	"github.com/thereceipt/template-studio/internal/storage"
	"github.com/thereceipt/template-studio/pkg/templatedoc"
)

// Server is the API server
type Server struct {
	router   *gin.Engine
	store    *storage.Store
	log      *logrus.Logger
	currency string
	upgrader websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(store *storage.Store, log *logrus.Logger, currency string) *Server {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	server := &Server{
		router:   router,
		store:    store,
		log:      log,
		currency: currency,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	// Catalog and presets
	s.router.GET("/kinds", s.handleGetKinds)
	s.router.GET("/presets", s.handleGetPresets)

	// Saved templates
	s.router.GET("/templates", s.handleListTemplates)
	s.router.POST("/templates", s.handleSaveTemplate)
	s.router.GET("/templates/:id", s.handleGetTemplate)
	s.router.DELETE("/templates/:id", s.handleDeleteTemplate)

	// Rendering
	s.router.POST("/render", s.handleRender)
	s.router.POST("/validate", s.handleValidate)

	// WebSocket editing session
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// handleGetKinds returns the section catalog
func (s *Server) handleGetKinds(c *gin.Context) {
	kinds := catalog.Kinds()
	items := make([]gin.H, len(kinds))
	for i, k := range kinds {
		items[i] = gin.H{
			"kind":     k,
			"label":    catalog.Label(k),
			"defaults": catalog.Defaults(k),
		}
	}
	c.JSON(200, gin.H{"kinds": items})
}

// handleGetPresets returns starter presets, optionally filtered by kind
func (s *Server) handleGetPresets(c *gin.Context) {
	infos := preset.List(c.Query("kind"))
	items := make([]gin.H, len(infos))
	for i, p := range infos {
		items[i] = gin.H{
			"key":         p.Key,
			"name":        p.Name,
			"kind":        p.Kind,
			"sections":    p.SectionCount,
			"description": p.Description,
		}
	}
	c.JSON(200, gin.H{"presets": items})
}

// handleListTemplates returns saved template metadata
func (s *Server) handleListTemplates(c *gin.Context) {
	c.JSON(200, gin.H{"templates": s.store.List()})
}

// handleSaveTemplate validates and stores a template document
func (s *Server) handleSaveTemplate(c *gin.Context) {
	var doc templatedoc.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.Save(c.Request.Context(), &doc); err != nil {
		s.log.WithError(err).Warn("template save rejected")
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// handleGetTemplate returns a saved template document
func (s *Server) handleGetTemplate(c *gin.Context) {
	doc, err := s.store.Load(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"error": "template not found"})
		return
	}
	c.JSON(200, doc)
}

// handleDeleteTemplate removes a saved template
func (s *Server) handleDeleteTemplate(c *gin.Context) {
	if !s.store.Delete(c.Param("id")) {
		c.JSON(404, gin.H{"error": "template not found"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

// handleRender renders a template document to a PNG preview. The
// document comes either inline or by saved template id.
func (s *Server) handleRender(c *gin.Context) {
	var req struct {
		Document   *templatedoc.Document `json:"document"`
		TemplateID string                `json:"template_id"`
		Theme      string                `json:"theme"`
		Currency   string                `json:"currency"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var doc *templatedoc.Document
	if req.TemplateID != "" {
		loaded, err := s.store.Load(req.TemplateID)
		if err != nil {
			c.JSON(404, gin.H{"error": "template not found"})
			return
		}
		doc = loaded
	} else if req.Document != nil {
		doc = req.Document
	} else {
		c.JSON(400, gin.H{"error": "document or template_id is required"})
		return
	}

	if err := templatedoc.Validate(doc); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
		return
	}

	theme := render.LightTheme()
	if req.Theme == "dark" {
		theme = render.DarkTheme()
	}
	currency := s.currency
	if req.Currency != "" {
		currency = req.Currency
	}

	img, err := render.RenderPNG(doc, render.NewContext(doc.AccentColor, theme, money.NewFormatter(currency, "")))
	if err != nil {
		s.log.WithError(err).Error("preview render failed")
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render preview: %v", err)})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode preview: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handleValidate checks a template document without storing it
func (s *Server) handleValidate(c *gin.Context) {
	var doc templatedoc.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := templatedoc.Validate(&doc); err != nil {
		c.JSON(200, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"valid": true})
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
