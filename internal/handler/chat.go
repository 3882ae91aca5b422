package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
)

// ChatHandler relays customer questions to the configured generative-AI
// chat-completions endpoint. The provider is reached over plain HTTP with
// the API key from the environment; nothing is persisted.
type ChatHandler struct {
	Cfg    config.Config
	Client *http.Client
}

func NewChatHandler(cfg config.Config) *ChatHandler {
	return &ChatHandler{
		Cfg:    cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatReq struct {
	Message string `json:"message"`
}

type chatProviderReq struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatProviderResp struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const chatSystemPrompt = "You are a helpful assistant for a residential cleaning service. " +
	"Answer questions about services, scheduling and pricing briefly and politely."

// Ask forwards the caller's message and relays the provider's reply.
func (h *ChatHandler) Ask(c echo.Context) error {
	if h.Cfg.AIAPIKey == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "chat not configured"})
	}
	var req chatReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}

	body, err := json.Marshal(chatProviderReq{
		Model: h.Cfg.AIModel,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: req.Message},
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode request failed"})
	}

	httpReq, err := http.NewRequestWithContext(c.Request().Context(), http.MethodPost, h.Cfg.AIAPIURL, bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build request failed"})
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.Cfg.AIAPIKey)

	resp, err := h.Client.Do(httpReq)
	if err != nil {
		c.Logger().Errorf("chat: provider request: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "chat provider unavailable"})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Logger().Warnf("chat: provider status %d", resp.StatusCode)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "chat provider error"})
	}
	var out chatProviderResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "invalid provider response"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": out.Choices[0].Message.Content})
}
