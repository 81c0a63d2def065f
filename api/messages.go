package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mightytheif/sakany/internal/chat"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; auth happens via JWT,
	// not via origin checks.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type MessagesHandler struct {
	msgRepo repository.MessageRepo
	hub     *chat.Hub
}

func NewMessagesHandler(mr repository.MessageRepo, hub *chat.Hub) *MessagesHandler {
	return &MessagesHandler{msgRepo: mr, hub: hub}
}

type sendMessageRequest struct {
	RecipientID int64  `json:"recipient_id"`
	PropertyID  *int64 `json:"property_id,omitempty"`
	Body        string `json:"body"`
}

// Send delivers a message over REST. Delivery goes through the hub so any
// live websocket connections of the recipient see it immediately.
func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.RecipientID <= 0 || req.Body == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}
	if len(req.Body) > 2000 {
		http.Error(w, "message too long", http.StatusBadRequest)
		return
	}

	msg := &models.Message{
		SenderID:    userID(r),
		RecipientID: req.RecipientID,
		PropertyID:  req.PropertyID,
		Body:        req.Body,
	}

	if err := h.hub.Deliver(r.Context(), msg); err != nil {
		http.Error(w, "failed to send message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, msg, http.StatusCreated)
}

// Conversation lists the message history between the caller and another user.
func (h *MessagesHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	otherID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil || otherID <= 0 {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	limit, offset := pagination(q.Get("limit"), q.Get("offset"))

	msgs, err := h.msgRepo.ListBetween(r.Context(), userID(r), otherID, limit, offset)
	if err != nil {
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, map[string]any{"items": msgs}, http.StatusOK)
}

// Inbox lists the caller's recent messages across all conversations.
func (h *MessagesHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := pagination(q.Get("limit"), q.Get("offset"))

	msgs, err := h.msgRepo.ListForUser(r.Context(), userID(r), limit, offset)
	if err != nil {
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, map[string]any{"items": msgs}, http.StatusOK)
}

// Websocket upgrades the connection and hands it to the chat hub. The JWT
// middleware has already authenticated the caller.
func (h *MessagesHandler) Websocket(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid <= 0 {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade", "err", err)
		return
	}

	h.hub.Register(uid, conn)
	h.hub.ReadLoop(r.Context(), uid, conn)
}
