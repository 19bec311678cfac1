package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// MessageHandler serves the support chat surface. Sending and reading a
// conversation is open to customers; the inbox and read-marking are staff
// operations guarded at the router.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /messages.
//
// @Summary      Send a chat message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A message claiming to come from staff must carry staff credentials.
	if req.FromAdmin {
		if role, _ := c.Get("role").(string); role == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "staff message requires authentication")
		}
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderName:     req.SenderName,
		Text:           req.Text,
		Sticker:        req.Sticker,
		FileURL:        req.FileURL,
		FromAdmin:      req.FromAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// ListConversation handles GET /messages/:conversation.
//
// @Summary      List a conversation's messages, oldest first
// @Tags         messages
// @Produce      json
// @Param        conversation  path     string  true  "Conversation id"
// @Success      200           {array}  domain.Message
// @Router       /messages/{conversation} [get]
func (h *MessageHandler) ListConversation(c echo.Context) error {
	conversationID := c.Param("conversation")
	if conversationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing conversation id")
	}

	messages, err := h.service.ListConversation(c.Request().Context(), conversationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkRead handles POST /messages/:conversation/read.
//
// @Summary      Mark the customer's messages in a conversation as read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        conversation  path      string  true  "Conversation id"
// @Success      200           {object}  map[string]bool
// @Router       /messages/{conversation}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	conversationID := c.Param("conversation")
	if conversationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing conversation id")
	}

	// Staff reads the customer's side of the conversation.
	if err := h.service.MarkRead(c.Request().Context(), conversationID, false); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListConversations handles GET /conversations.
//
// @Summary      Staff inbox of all conversations
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ConversationSummary
// @Router       /conversations [get]
func (h *MessageHandler) ListConversations(c echo.Context) error {
	summaries, err := h.service.ListConversations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}
