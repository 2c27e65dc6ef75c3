package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduleMaintainer интерфейс сервиса скользящего окна расписаний
type ScheduleMaintainer interface {
	MaintainAllWindows(ctx context.Context, today time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MaintenanceJob ночное обслуживание окна расписаний
// Сдвигает окно каждого владельца: обрезает прошедшие дни и досоздает
// будущие. Окно также актуализируется лениво при чтении расписания,
// поэтому пропущенный запуск не нарушает корректность, только свежесть
type MaintenanceJob struct {
	maintainer ScheduleMaintainer
	logger     Logger
	cron       *cron.Cron
}

// NewMaintenanceJob создает новое задание обслуживания
func NewMaintenanceJob(maintainer ScheduleMaintainer, logger Logger) *MaintenanceJob {
	return &MaintenanceJob{
		maintainer: maintainer,
		logger:     logger,
		cron:       cron.New(),
	}
}

// Start регистрирует задание по cron-выражению и запускает планировщик
func (j *MaintenanceJob) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Schedule maintenance job started (schedule=%q)", schedule)
	return nil
}

// Stop останавливает планировщик, дожидаясь завершения текущего запуска
func (j *MaintenanceJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("Schedule maintenance job stopped")
}

func (j *MaintenanceJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	processed, err := j.maintainer.MaintainAllWindows(ctx, started)
	if err != nil {
		j.logger.Error("Schedule maintenance failed: %v", err)
		return
	}

	j.logger.Info("Schedule maintenance finished: %d owners in %s", processed, time.Since(started))
}
