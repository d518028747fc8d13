package http

import (
	"net/http"

	"academyhub-backend/internal/service"
)

type ChatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	channelID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.chat.SendMessage(r.Context(), p.UserID, channelID, req.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, limit := pagination(r)

	msgs, total, err := h.chat.ListMessages(r.Context(), channelID, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listEnvelope{Items: msgs, Total: total, Page: page, Limit: limit})
}

type sendFriendRequestRequest struct {
	ToUserID int32 `json:"to_user_id"`
}

func (h *ChatHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	var req sendFriendRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	fr, err := h.chat.SendFriendRequest(r.Context(), p.UserID, req.ToUserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, fr)
}

type respondFriendRequestRequest struct {
	Accept bool `json:"accept"`
}

func (h *ChatHandler) RespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req respondFriendRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	fr, err := h.chat.RespondFriendRequest(r.Context(), p.UserID, id, req.Accept)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fr)
}

func (h *ChatHandler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	reqs, err := h.chat.ListFriendRequests(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reqs)
}
