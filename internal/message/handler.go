package handler

import (
	"net/http"

	"messageboard/internal/message/model"
	"messageboard/internal/message/service"
	"messageboard/middleware"
	"messageboard/pkg/logger"
	"messageboard/pkg/res"
	"messageboard/store"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	Service *service.MessageService
}

func NewMessageHandler(service *service.MessageService) *MessageHandler {
	return &MessageHandler{Service: service}
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Service.ListMessages(r.Context())
	if err != nil {
		h.fail(w, err, model.StatusListFailed)
		return
	}

	res.Json(w, model.ListMessagesResponse{Messages: messages, Status: model.StatusOK}, http.StatusOK)
}

// GetMessage answers with a list even for a single id; an unknown id
// yields an empty list, not a 404.
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	messageID := mux.Vars(r)["messageId"]

	messages, err := h.Service.GetMessage(r.Context(), messageID)
	if err != nil {
		h.fail(w, err, model.StatusListFailed)
		return
	}

	res.Json(w, model.ListMessagesResponse{Messages: messages, Status: model.StatusOK}, http.StatusOK)
}

func (h *MessageHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	fields := middleware.FieldsFromContext(r.Context())
	req := model.SaveMessageRequest{
		Name:    fields.String("name"),
		Message: fields.String("message"),
	}

	msg, err := h.Service.SaveMessage(r.Context(), req)
	if err != nil {
		h.fail(w, err, model.StatusSaveFailed)
		return
	}

	res.Json(w, model.SaveMessageResponse{Message: msg, Status: model.StatusOK}, http.StatusOK)
}

func (h *MessageHandler) fail(w http.ResponseWriter, err error, status string) {
	logger.Sugar.Errorf("Handler: %s: %v", status, err)

	kind := store.KindOf(err)
	res.Json(w, model.ErrorResponse{
		Error:  store.PublicMessage(kind),
		Status: status,
	}, store.HTTPStatus(kind))
}
