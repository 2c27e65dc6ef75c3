package get_analytics

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/analytics/models"
)

// AnalyticsService интерфейс сервиса аналитики
type AnalyticsService interface {
	GetOwnerAnalytics(ctx context.Context, ownerID int64) (*models.OwnerAnalytics, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*profileservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
