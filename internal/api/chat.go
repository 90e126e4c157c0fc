package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/llmgateway/internal/api/middleware"
	"github.com/themobileprof/llmgateway/internal/privacy"
	"github.com/themobileprof/llmgateway/pkg/llm"
)

const (
	Version = "1.0.0"

	defaultProvider = "openai"
)

// ChatService is the part of gateway.Client the handlers use
type ChatService interface {
	Chat(ctx context.Context, providerID string, conv llm.Conversation, cfg llm.ProviderConfig) (string, error)
	SimpleChat(ctx context.Context, prompt, providerID string, cfg llm.ProviderConfig) (string, error)
	Providers() []llm.Provider
}

// ChatMessage is one message in a /chat request body
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

// ChatRequest is the /chat request body
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages" binding:"required,dive"`
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	Temperature *float64      `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// SimpleChatRequest is the /simple request body
type SimpleChatRequest struct {
	Prompt      string   `json:"prompt" binding:"required"`
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
}

// ChatResponse is returned by both chat endpoints
type ChatResponse struct {
	Response string `json:"response"`
	Provider string `json:"provider"`
}

// ChatHandler serves the gateway endpoints
type ChatHandler struct {
	svc ChatService
}

// NewChatHandler creates a handler backed by svc
func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// RegisterRoutes mounts the root, health and chat routes on r
func (h *ChatHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/chat", h.Chat)
	r.POST("/simple", h.SimpleChat)
}

// Root describes the service
func (h *ChatHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "LLM API service",
		"version":   Version,
		"providers": h.svc.Providers(),
		"endpoints": gin.H{
			"/chat":   "POST - multi-turn chat",
			"/simple": "POST - single-turn chat",
			"/health": "GET - health check",
		},
	})
}

// Health reports that the process is serving
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Chat handles a multi-turn conversation
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Provider == "" {
		req.Provider = defaultProvider
	}

	conv := make(llm.Conversation, len(req.Messages))
	for i, m := range req.Messages {
		conv[i] = llm.Message{Role: llm.Role(m.Role), Content: m.Content}
	}

	cfg := llm.ProviderConfig{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	response, err := h.svc.Chat(c.Request.Context(), req.Provider, conv, cfg)
	if err != nil {
		h.respondError(c, req.Provider, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: response, Provider: req.Provider})
}

// SimpleChat handles a single prompt
func (h *ChatHandler) SimpleChat(c *gin.Context) {
	var req SimpleChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Provider == "" {
		req.Provider = defaultProvider
	}

	cfg := llm.ProviderConfig{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	response, err := h.svc.SimpleChat(c.Request.Context(), req.Prompt, req.Provider, cfg)
	if err != nil {
		h.respondError(c, req.Provider, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: response, Provider: req.Provider})
}

func (h *ChatHandler) respondError(c *gin.Context, provider string, err error) {
	requestID := middleware.GetRequestID(c)

	switch {
	case errors.Is(err, llm.ErrUnsupportedProvider), errors.Is(err, llm.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, llm.ErrNoResponse):
		log.Printf("Chat failed: request=%s provider=%s: %s", requestID, provider, privacy.SanitizeForLogging(err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API call failed"})

	default:
		log.Printf("Chat error: request=%s provider=%s: %s", requestID, provider, privacy.SanitizeForLogging(err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(svc ChatService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())

	NewChatHandler(svc).RegisterRoutes(router)
	return router
}
