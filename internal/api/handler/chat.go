package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/api/response"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/service"
)

var validate = validator.New()

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// Message handles one chat turn. A missing session id mints a new session;
// the id comes back in the reply so the client can keep the conversation.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	reply, err := h.chatService.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		response.InternalError(w, "something went wrong processing your message")
		return
	}

	response.OK(w, reply)
}

// History returns the transcript for a session
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, "missing session ID")
		return
	}

	response.OK(w, h.chatService.History(sessionID))
}
