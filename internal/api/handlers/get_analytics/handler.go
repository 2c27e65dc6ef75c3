package get_analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	getAnalytics "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_analytics"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца расписания"
	msgMissingUserID  = "отсутствует идентификатор пользователя"
	msgForbidden      = "аналитика доступна только владельцу расписания"
)

type Handler struct {
	useCase GetAnalyticsUseCase
	logger  Logger
}

func NewHandler(useCase GetAnalyticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics/{ownerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /analytics/{ownerId} - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /analytics/{ownerId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Аналитика видна только самому владельцу
	if userID != ownerID {
		h.logger.Warn("GET /analytics/{ownerId} - Access denied: user_id=%d, owner_id=%d", userID, ownerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAnalytics.Request{OwnerID: ownerID})
	if err != nil {
		switch {
		case errors.Is(err, getAnalytics.ErrInvalidInput):
			h.logger.Warn("GET /analytics/{ownerId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)

		default:
			h.logger.Error("GET /analytics/{ownerId} - Failed to get analytics: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /analytics/{ownerId} - Analytics returned: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
