package models

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// OwnerAnalytics агрегированная статистика бронирований владельца
type OwnerAnalytics struct {
	// FrequentSlot самое бронируемое время сетки, nil при отсутствии статистики.
	// При равенстве счётчиков выбирается самое раннее время дня
	FrequentSlot *domain.FrequentSlot

	// TopBookers зрители с наибольшим числом бронирований, по убыванию.
	// Продвижения из очереди учитываются наравне с прямыми бронированиями
	TopBookers []*domain.BookerTotal
}
