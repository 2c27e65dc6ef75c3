package models

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// Outcome исход заявки зрителя на слот
type Outcome string

const (
	// OutcomeBooked заявка выиграла слот
	OutcomeBooked Outcome = "booked"
	// OutcomeWaitlisted слот занят, зритель поставлен в очередь
	OutcomeWaitlisted Outcome = "waitlisted"
)

// BookingResult результат заявки на бронирование слота
type BookingResult struct {
	Outcome Outcome
	// Position позиция в очереди, заполняется только для OutcomeWaitlisted
	Position int
}

// ToggleResult результат переключения доступности слота владельцем
type ToggleResult struct {
	NewState domain.SlotState
}

// CancelResult результат отмены бронирования
type CancelResult struct {
	// PromotedViewerID зритель, продвинутый из головы очереди, либо nil,
	// если очередь была пуста и слот вернулся в состояние open
	PromotedViewerID *int64
	NewState         domain.SlotState
	WaitlistCount    int
}

// WaitlistResult результат постановки в очередь
type WaitlistResult struct {
	Position int
}
