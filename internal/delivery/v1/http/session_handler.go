package http

import (
	"net/http"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUC
	logger         logger.Logger
}

func NewSessionHandler(sessionUsecase usecase.SessionUC, logger logger.Logger) *SessionHandler {
	return &SessionHandler{sessionUsecase: sessionUsecase, logger: logger}
}

// getSession
//
//	@Summary		Состояние сессии
//	@Description	Активная вкладка, фильтр, калькулятор и корзина
//	@Tags			session
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Router			/session [get]
func (h *SessionHandler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionUsecase.GetSession(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSessionResponse(session))
}

// switchView
//
//	@Summary	Переключить вкладку
//	@Tags		session
//	@Accept		json
//	@Produce	json
//	@Param		view	body		SwitchViewRequest	true	"catalog, calculator, cart или contacts"
//	@Success	200		{object}	SessionResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/session/view [put]
func (h *SessionHandler) switchView(w http.ResponseWriter, r *http.Request) {
	var req SwitchViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	view, err := domain.ParseView(req.View)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	session, err := h.sessionUsecase.SwitchView(r.Context(), SessionID(r.Context()), view)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSessionResponse(session))
}

// getContacts
//
//	@Summary	Контакты магазина
//	@Tags		contacts
//	@Produce	json
//	@Success	200	{object}	ContactsResponse
//	@Router		/contacts [get]
func (h *SessionHandler) getContacts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, newContactsResponse(h.sessionUsecase.Contacts()))
}
