package withdraw_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	withdrawWaitlist "github.com/m04kA/SMC-ScheduleService/internal/usecase/withdraw_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время слота, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgSlotNotFound       = "слот не найден"
)

type Handler struct {
	useCase WithdrawWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase WithdrawWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/waitlist/withdraw
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем viewerID из контекста (через middleware Auth)
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/waitlist/withdraw - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req WithdrawWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/waitlist/withdraw - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(viewerID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/waitlist/withdraw - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	if err := h.useCase.Execute(r.Context(), useCaseReq); err != nil {
		switch {
		case errors.Is(err, withdrawWaitlist.ErrSlotNotFound):
			h.logger.Warn("PATCH /appointments/waitlist/withdraw - Slot not found: owner_id=%d, date=%s, time=%s",
				req.OwnerID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, withdrawWaitlist.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/waitlist/withdraw - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("PATCH /appointments/waitlist/withdraw - Failed to withdraw: viewer_id=%d, error=%v",
				viewerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/waitlist/withdraw - Withdrawn: viewer_id=%d, owner_id=%d, date=%s, time=%s",
		viewerID, req.OwnerID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
