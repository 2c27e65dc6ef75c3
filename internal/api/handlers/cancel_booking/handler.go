package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время слота, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgSlotNotFound       = "слот не найден"
	msgNoActiveBooking    = "в слоте нет активного бронирования"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем actorID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/cancel - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrSlotNotFound):
			h.logger.Warn("PATCH /appointments/cancel - Slot not found: owner_id=%d, date=%s, time=%s",
				req.OwnerID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cancelBooking.ErrNoActiveBooking):
			h.logger.Warn("PATCH /appointments/cancel - No active booking: owner_id=%d, date=%s, time=%s",
				req.OwnerID, req.Date, req.Time)
			handlers.RespondConflict(w, msgNoActiveBooking)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/cancel - Access denied: actor_id=%d, owner_id=%d",
				actorID, req.OwnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("PATCH /appointments/cancel - Failed to cancel: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/cancel - Booking cancelled: actor_id=%d, owner_id=%d, date=%s, time=%s, state=%s, promoted_viewer_id=%d",
		actorID, req.OwnerID, req.Date, req.Time, result.State, ptr.Value(result.PromotedViewerID))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
