package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
)

// Service сервис скользящего окна расписаний
//
// Поддерживает инвариант: у каждого владельца материализованы ровно дни
// [сегодня, сегодня+ScheduleWindowDays-1]. Прошедшие дни удаляются вместе
// со слотами и очередями, недостающие будущие дни досоздаются с полной
// сеткой закрытых слотов.
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetSchedule возвращает окно расписания владельца на ScheduleWindowDays дней
// Перед чтением окно приводится к актуальному виду в той же транзакции,
// поэтому ответ всегда содержит полный набор дней
func (s *Service) GetSchedule(ctx context.Context, ownerID int64, today time.Time) ([]*domain.ScheduleDay, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	today = domain.DateOnly(today)
	windowEnd := today.AddDate(0, 0, domain.ScheduleWindowDays-1)

	var result []*domain.ScheduleDay

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ensureWindow(txCtx, ownerID, today); err != nil {
			return err
		}

		days, err := s.slotRepo.GetDays(txCtx, ownerID, today, windowEnd)
		if err != nil {
			return fmt.Errorf("%w: GetSchedule - get days: %v", ErrInternal, err)
		}

		scheduleIDs := make([]int64, 0, len(days))
		for _, day := range days {
			scheduleIDs = append(scheduleIDs, day.ID)
		}

		slotsByDay, err := s.slotRepo.GetSlotsByScheduleIDs(txCtx, scheduleIDs)
		if err != nil {
			return fmt.Errorf("%w: GetSchedule - get slots: %v", ErrInternal, err)
		}

		result = make([]*domain.ScheduleDay, 0, len(days))
		for _, day := range days {
			result = append(result, &domain.ScheduleDay{
				Date:  day.Date,
				Slots: slotsByDay[day.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetViewerBookings возвращает активные бронирования зрителя по всем расписаниям
func (s *Service) GetViewerBookings(ctx context.Context, viewerID int64) ([]*domain.ViewerBooking, error) {
	if viewerID <= 0 {
		return nil, fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	var result []*domain.ViewerBooking

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err := s.slotRepo.GetViewerBookings(txCtx, viewerID)
		if err != nil {
			return fmt.Errorf("%w: GetViewerBookings: %v", ErrInternal, err)
		}
		result = bookings
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// MaintainAllWindows приводит окна всех известных владельцев к актуальному виду
// Используется ночным обслуживанием; сбой одного владельца не прерывает
// обработку остальных. Возвращает число успешно обработанных владельцев
func (s *Service) MaintainAllWindows(ctx context.Context, today time.Time) (int, error) {
	today = domain.DateOnly(today)

	ownerIDs, err := s.slotRepo.GetOwnerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: MaintainAllWindows - get owners: %v", ErrInternal, err)
	}

	processed := 0
	for _, ownerID := range ownerIDs {
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			return s.ensureWindow(txCtx, ownerID, today)
		})
		if err != nil {
			s.logger.Error("MaintainAllWindows: owner=%d: %v", ownerID, err)
			continue
		}
		processed++
	}

	s.logger.Info("MaintainAllWindows: processed %d/%d owners", processed, len(ownerIDs))
	return processed, nil
}

// ensureWindow сдвигает окно расписания владельца: удаляет прошедшие дни
// и досоздает недостающие до горизонта ScheduleWindowDays
func (s *Service) ensureWindow(ctx context.Context, ownerID int64, today time.Time) error {
	pruned, err := s.slotRepo.DeleteDaysBefore(ctx, ownerID, today)
	if err != nil {
		return fmt.Errorf("%w: ensure window - prune past days: %v", ErrInternal, err)
	}
	if pruned > 0 {
		s.logger.Info("ensureWindow: owner=%d pruned %d past days", ownerID, pruned)
	}

	last, err := s.slotRepo.GetLastDay(ctx, ownerID)
	if err != nil && !errors.Is(err, slotRepo.ErrScheduleNotFound) {
		return fmt.Errorf("%w: ensure window - get last day: %v", ErrInternal, err)
	}

	for i := 0; i < domain.ScheduleWindowDays; i++ {
		date := today.AddDate(0, 0, i)
		// Дни до последнего существующего уже материализованы
		if last != nil && !date.After(domain.DateOnly(last.Date)) {
			continue
		}
		if _, err := s.slotRepo.EnsureDay(ctx, ownerID, date); err != nil {
			return fmt.Errorf("%w: ensure window - create day %s: %v",
				ErrInternal, date.Format(domain.DateFormat), err)
		}
	}

	return nil
}
