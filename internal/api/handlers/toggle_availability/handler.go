package toggle_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	toggleAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/toggle_availability"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время слота, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgNotOwner           = "слот может переключать только владелец расписания"
	msgSlotOccupied       = "слот с активным бронированием нельзя закрыть"
	msgOutsideWindow      = "дата вне опубликованного окна расписания"
)

type Handler struct {
	useCase ToggleAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ToggleAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedules/{ownerId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /schedules/{ownerId}/slots - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем actorID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /schedules/{ownerId}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedules/{ownerId}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actorID, ownerID)
	if err != nil {
		h.logger.Warn("PATCH /schedules/{ownerId}/slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, toggleAvailability.ErrNotOwner):
			h.logger.Warn("PATCH /schedules/{ownerId}/slots - Not owner: actor_id=%d, owner_id=%d", actorID, ownerID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, toggleAvailability.ErrSlotOccupied):
			h.logger.Warn("PATCH /schedules/{ownerId}/slots - Slot occupied: owner_id=%d, date=%s, time=%s",
				ownerID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, toggleAvailability.ErrDateOutsideWindow):
			h.logger.Warn("PATCH /schedules/{ownerId}/slots - Date outside window: owner_id=%d, date=%s",
				ownerID, req.Date)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, toggleAvailability.ErrInvalidInput):
			h.logger.Warn("PATCH /schedules/{ownerId}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("PATCH /schedules/{ownerId}/slots - Failed to toggle slot: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{ownerId}/slots - Slot toggled: owner_id=%d, date=%s, time=%s, state=%s",
		ownerID, req.Date, req.Time, result.State)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
