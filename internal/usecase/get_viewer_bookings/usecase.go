package get_viewer_bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case чтения активных бронирований зрителя
type UseCase struct {
	scheduleService ScheduleService
	profileClient   ProfileServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleService ScheduleService, profileClient ProfileServiceClient, logger Logger) *UseCase {
	return &UseCase{
		scheduleService: scheduleService,
		profileClient:   profileClient,
		logger:          logger,
	}
}

// Execute выполняет use case чтения бронирований зрителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetViewerBookings: viewer=%d", req.ViewerID)

	// 1. Валидация входных данных
	if req.ViewerID <= 0 {
		return nil, fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	// 2. Читаем бронирования
	bookings, err := uc.scheduleService.GetViewerBookings(ctx, req.ViewerID)
	if err != nil {
		uc.logger.Error("GetViewerBookings: viewer=%d: %v", req.ViewerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Обогащаем именами владельцев, кэшируя повторные обращения
	names := make(map[int64]*string)
	response := &Response{
		ViewerID: req.ViewerID,
		Bookings: make([]Booking, 0, len(bookings)),
	}

	for _, booking := range bookings {
		name, ok := names[booking.OwnerID]
		if !ok {
			if user, err := uc.profileClient.GetUserWithGracefulDegradation(ctx, booking.OwnerID); err == nil {
				name = &user.Name
			}
			names[booking.OwnerID] = name
		}

		response.Bookings = append(response.Bookings, Booking{
			OwnerID:   booking.OwnerID,
			OwnerName: name,
			Date:      booking.Date.Format(domain.DateFormat),
			Time:      domain.FormatSlotTime(booking.Hour, booking.Minute),
		})
	}

	return response, nil
}
