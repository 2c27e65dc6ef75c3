package submit_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	submitAppointments "github.com/m04kA/SMC-ScheduleService/internal/usecase/submit_appointments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время слота, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgSelectionLimit     = "за одну заявку можно выбрать не более трёх слотов"
	msgEmptySelection     = "заявка не содержит ни одного слота"
)

type Handler struct {
	useCase SubmitAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем viewerID из контекста (через middleware Auth)
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req SubmitAppointmentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и времени)
	useCaseReq, err := req.ToUseCaseRequest(viewerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitAppointments.ErrSelectionLimitExceeded):
			h.logger.Warn("POST /appointments - Selection limit exceeded: viewer_id=%d, selections=%d",
				viewerID, len(req.Selections))
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSelectionLimit)

		case errors.Is(err, submitAppointments.ErrEmptySelection):
			h.logger.Warn("POST /appointments - Empty selection: viewer_id=%d", viewerID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, submitAppointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		default:
			h.logger.Error("POST /appointments - Failed to submit: viewer_id=%d, error=%v", viewerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Processed: viewer_id=%d, results=%d", viewerID, len(result.Results))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
