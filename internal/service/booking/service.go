package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	waitlistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-ScheduleService/internal/service/booking/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

// Service координатор бронирований - машина состояний слота
//
// Владеет всеми переходами CLOSED <-> OPEN -> BOOKED -> OPEN и является
// единственным мутатором слотов, очередей и статистики. Каждый переход
// выполняется под per-slot блокировкой и применяется одной сериализуемой
// транзакцией: конкурентные заявки на один слот строго упорядочены, операции
// над разными слотами идут параллельно.
type Service struct {
	slotRepo     SlotRepository
	waitlistRepo WaitlistRepository
	statsRepo    StatsRepository
	txManager    TransactionManager
	locks        SlotLocker
	metrics      metrics.Recorder
	logger       Logger
}

// NewService создает новый экземпляр координатора бронирований
func NewService(
	slotRepo SlotRepository,
	waitlistRepo WaitlistRepository,
	statsRepo StatsRepository,
	txManager TransactionManager,
	locks SlotLocker,
	recorder metrics.Recorder,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		waitlistRepo: waitlistRepo,
		statsRepo:    statsRepo,
		txManager:    txManager,
		locks:        locks,
		metrics:      recorder,
		logger:       logger,
	}
}

// lockSlot захватывает per-slot блокировку, записывая время ожидания в метрики
func (s *Service) lockSlot(key domain.SlotKey) func() {
	lockKey := key.String()
	start := time.Now()
	s.locks.Lock(lockKey)
	s.metrics.ObserveSlotLockWait(time.Since(start).Seconds())

	return func() { s.locks.Unlock(lockKey) }
}

// ToggleAvailability переключает слот владельца между состояниями closed и open
// Допустимо только для слотов без активного бронирования; слот материализуется
// при первом обращении (закрытым) и сразу открывается
func (s *Service) ToggleAvailability(ctx context.Context, actorID int64, key domain.SlotKey) (*models.ToggleResult, error) {
	if err := key.Validate(); err != nil {
		s.logger.Warn("ToggleAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if actorID != key.OwnerID {
		s.logger.Warn("ToggleAvailability: user=%d is not owner of schedule owner=%d", actorID, key.OwnerID)
		return nil, ErrNotOwner
	}

	unlock := s.lockSlot(key)
	defer unlock()

	var result *models.ToggleResult

	err := s.withRetry(ctx, "ToggleAvailability", func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// Материализуем день и сетку при первом касании
			if _, err := s.slotRepo.EnsureDay(txCtx, key.OwnerID, key.Date); err != nil {
				return fmt.Errorf("%w: ToggleAvailability - ensure day: %v", ErrInternal, err)
			}

			slot, err := s.slotRepo.GetSlotByKey(txCtx, key)
			if err != nil {
				return fmt.Errorf("%w: ToggleAvailability - get slot: %v", ErrInternal, err)
			}

			if slot.State() == domain.SlotBooked {
				return ErrSlotOccupied
			}

			newAvailable := !slot.Available
			if err := s.slotRepo.SetAvailability(txCtx, slot.ID, newAvailable); err != nil {
				return fmt.Errorf("%w: ToggleAvailability - set availability: %v", ErrInternal, err)
			}

			newState := domain.SlotClosed
			if newAvailable {
				newState = domain.SlotOpen
			}
			result = &models.ToggleResult{NewState: newState}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ToggleAvailability: slot %s -> %s", key, result.NewState)
	return result, nil
}

// RequestBooking обрабатывает заявку зрителя на слот
//
// OPEN: слот достаётся зрителю, статистика увеличивается - исход booked.
// BOOKED чужим зрителем: заявка перенаправляется в очередь - исход waitlisted.
// BOOKED этим же зрителем или уже в очереди: ErrDuplicateRequest.
// CLOSED: ErrInvalidTransition.
//
// Из конкурентных заявок на один OPEN слот ровно одна получает booked,
// остальные наблюдают BOOKED и уходят в очередь.
func (s *Service) RequestBooking(ctx context.Context, viewerID int64, key domain.SlotKey) (*models.BookingResult, error) {
	if err := key.Validate(); err != nil {
		s.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if viewerID <= 0 {
		return nil, fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}
	if viewerID == key.OwnerID {
		return nil, fmt.Errorf("%w: owner cannot book own slot", ErrInvalidInput)
	}

	unlock := s.lockSlot(key)
	defer unlock()

	var result *models.BookingResult

	err := s.withRetry(ctx, "RequestBooking", func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			slot, err := s.getSlot(txCtx, key)
			if err != nil {
				return err
			}

			switch slot.State() {
			case domain.SlotClosed:
				return ErrInvalidTransition

			case domain.SlotOpen:
				if err := s.slotRepo.SetOccupant(txCtx, slot.ID, &viewerID); err != nil {
					return fmt.Errorf("%w: RequestBooking - set occupant: %v", ErrInternal, err)
				}
				if err := s.statsRepo.IncrementBooking(txCtx, key.OwnerID, viewerID, key.Hour, key.Minute); err != nil {
					return fmt.Errorf("%w: RequestBooking - increment stats: %v", ErrInternal, err)
				}
				result = &models.BookingResult{Outcome: models.OutcomeBooked}
				return nil

			case domain.SlotBooked:
				entry, err := s.enqueue(txCtx, slot, viewerID)
				if err != nil {
					return err
				}
				result = &models.BookingResult{Outcome: models.OutcomeWaitlisted, Position: entry.Position}
				return nil

			default:
				return fmt.Errorf("%w: unknown slot state %q", ErrInternal, slot.State())
			}
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBookingOutcome(string(result.Outcome))
	s.logger.Info("RequestBooking: viewer=%d slot %s -> %s", viewerID, key, result.Outcome)
	return result, nil
}

// JoinWaitlist ставит зрителя в очередь занятого слота
// Допустимо только из состояния booked
func (s *Service) JoinWaitlist(ctx context.Context, viewerID int64, key domain.SlotKey) (*models.WaitlistResult, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if viewerID <= 0 {
		return nil, fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	unlock := s.lockSlot(key)
	defer unlock()

	var result *models.WaitlistResult

	err := s.withRetry(ctx, "JoinWaitlist", func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			slot, err := s.getSlot(txCtx, key)
			if err != nil {
				return err
			}

			if slot.State() != domain.SlotBooked {
				return ErrInvalidTransition
			}

			entry, err := s.enqueue(txCtx, slot, viewerID)
			if err != nil {
				return err
			}
			result = &models.WaitlistResult{Position: entry.Position}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("JoinWaitlist: viewer=%d slot %s position=%d", viewerID, key, result.Position)
	return result, nil
}

// WithdrawFromWaitlist убирает зрителя из очереди слота
// Отсутствие записи - не ошибка; позиции оставшихся перенумеровываются подряд
func (s *Service) WithdrawFromWaitlist(ctx context.Context, viewerID int64, key domain.SlotKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if viewerID <= 0 {
		return fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	unlock := s.lockSlot(key)
	defer unlock()

	return s.withRetry(ctx, "WithdrawFromWaitlist", func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			slot, err := s.getSlot(txCtx, key)
			if err != nil {
				return err
			}

			removed, err := s.waitlistRepo.Remove(txCtx, slot.ID, viewerID)
			if err != nil {
				return fmt.Errorf("%w: WithdrawFromWaitlist - remove entry: %v", ErrInternal, err)
			}
			if removed {
				s.logger.Info("WithdrawFromWaitlist: viewer=%d left queue of slot %s", viewerID, key)
			}
			return nil
		})
	})
}

// CancelBooking отменяет активное бронирование слота
//
// Разрешено текущему занимающему и владельцу расписания. Если очередь пуста,
// слот возвращается в open; иначе голова очереди продвигается в booked тем же
// переходом - никакая другая заявка не может вклиниться между отменой и
// продвижением
func (s *Service) CancelBooking(ctx context.Context, actorID int64, key domain.SlotKey) (*models.CancelResult, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	unlock := s.lockSlot(key)
	defer unlock()

	var result *models.CancelResult

	err := s.withRetry(ctx, "CancelBooking", func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			slot, err := s.getSlot(txCtx, key)
			if err != nil {
				return err
			}

			if slot.State() != domain.SlotBooked {
				return ErrInvalidTransition
			}
			if !slot.IsBookedBy(actorID) && actorID != key.OwnerID {
				return ErrAccessDenied
			}

			head, err := s.waitlistRepo.PeekHead(txCtx, slot.ID)
			if err != nil && !errors.Is(err, waitlistRepo.ErrEmptyWaitlist) {
				return fmt.Errorf("%w: CancelBooking - peek waitlist: %v", ErrInternal, err)
			}

			// Очередь пуста - слот снова открыт
			if head == nil {
				if err := s.slotRepo.SetOccupant(txCtx, slot.ID, nil); err != nil {
					return fmt.Errorf("%w: CancelBooking - clear occupant: %v", ErrInternal, err)
				}
				result = &models.CancelResult{NewState: domain.SlotOpen}
				return nil
			}

			// FIFO-продвижение головы очереди тем же переходом
			promoted := head.ViewerUserID
			if err := s.slotRepo.SetOccupant(txCtx, slot.ID, &promoted); err != nil {
				return fmt.Errorf("%w: CancelBooking - promote occupant: %v", ErrInternal, err)
			}
			if _, err := s.waitlistRepo.Remove(txCtx, slot.ID, promoted); err != nil {
				return fmt.Errorf("%w: CancelBooking - remove promoted entry: %v", ErrInternal, err)
			}
			if err := s.statsRepo.IncrementBooking(txCtx, key.OwnerID, promoted, key.Hour, key.Minute); err != nil {
				return fmt.Errorf("%w: CancelBooking - increment stats: %v", ErrInternal, err)
			}

			remaining, err := s.waitlistRepo.Size(txCtx, slot.ID)
			if err != nil {
				return fmt.Errorf("%w: CancelBooking - waitlist size: %v", ErrInternal, err)
			}

			result = &models.CancelResult{
				PromotedViewerID: &promoted,
				NewState:         domain.SlotBooked,
				WaitlistCount:    remaining,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.PromotedViewerID != nil {
		s.metrics.RecordWaitlistPromotion()
		s.logger.Info("CancelBooking: slot %s cancelled by user=%d, promoted viewer=%d (%d still queued)",
			key, actorID, *result.PromotedViewerID, result.WaitlistCount)
	} else {
		s.logger.Info("CancelBooking: slot %s cancelled by user=%d, reopened", key, actorID)
	}

	return result, nil
}

// getSlot читает слот по ключу, транслируя ошибки репозитория в ошибки сервиса
func (s *Service) getSlot(ctx context.Context, key domain.SlotKey) (*domain.Timeslot, error) {
	slot, err := s.slotRepo.GetSlotByKey(ctx, key)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) || errors.Is(err, slotRepo.ErrScheduleNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: get slot: %v", ErrInternal, err)
	}
	return slot, nil
}

// enqueue ставит зрителя в очередь занятого слота с проверкой дублей
func (s *Service) enqueue(ctx context.Context, slot *domain.Timeslot, viewerID int64) (*domain.WaitlistEntry, error) {
	if slot.IsBookedBy(viewerID) {
		return nil, ErrDuplicateRequest
	}

	queued, err := s.waitlistRepo.Exists(ctx, slot.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: enqueue - check queue: %v", ErrInternal, err)
	}
	if queued {
		return nil, ErrDuplicateRequest
	}

	entry, err := s.waitlistRepo.Append(ctx, slot.ID, viewerID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrDuplicateEntry) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("%w: enqueue - append: %v", ErrInternal, err)
	}

	return entry, nil
}
