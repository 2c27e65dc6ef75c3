package metrics

// Recorder интерфейс бизнес-метрик движка бронирования
// Реализуется *Metrics; Nop используется, когда метрики выключены
type Recorder interface {
	RecordBookingOutcome(outcome string)
	RecordWaitlistPromotion()
	ObserveSlotLockWait(seconds float64)
}

// RecordBookingOutcome увеличивает счётчик исходов бронирования
func (m *Metrics) RecordBookingOutcome(outcome string) {
	m.BookingOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordWaitlistPromotion увеличивает счётчик продвижений очереди
func (m *Metrics) RecordWaitlistPromotion() {
	m.WaitlistPromotionsTotal.Inc()
}

// ObserveSlotLockWait записывает время ожидания per-slot блокировки
func (m *Metrics) ObserveSlotLockWait(seconds float64) {
	m.SlotLockWaitDuration.Observe(seconds)
}

// Nop пустой Recorder
type Nop struct{}

func (Nop) RecordBookingOutcome(string) {}
func (Nop) RecordWaitlistPromotion()    {}
func (Nop) ObserveSlotLockWait(float64) {}
