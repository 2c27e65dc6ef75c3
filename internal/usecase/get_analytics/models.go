package get_analytics

// Request модель запроса аналитики владельца
type Request struct {
	OwnerID int64 // ID владельца расписания из пути запроса
}

// FrequentSlot самое бронируемое время сетки
type FrequentSlot struct {
	Time  string // время начала в формате HH:MM
	Total int    // суммарное число бронирований
}

// TopBooker один из самых активных зрителей
type TopBooker struct {
	UserID int64
	// Name отображаемое имя из ProfileService,
	// nil при graceful degradation
	Name  *string
	Total int
}

// Response модель ответа с аналитикой
type Response struct {
	OwnerID int64

	// FrequentSlot nil, если у владельца ещё не было бронирований
	FrequentSlot *FrequentSlot

	// TopBookers по убыванию числа бронирований
	TopBookers []TopBooker
}
