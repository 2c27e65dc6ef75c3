package get_viewer_bookings

// Request модель запроса бронирований зрителя
type Request struct {
	ViewerID int64 // ID зрителя из пути запроса
}

// Booking одно активное бронирование зрителя
type Booking struct {
	OwnerID int64
	// OwnerName отображаемое имя владельца из ProfileService,
	// nil при graceful degradation
	OwnerName *string
	Date      string // дата в формате YYYY-MM-DD
	Time      string // время начала в формате HH:MM
}

// Response модель ответа со списком бронирований
type Response struct {
	ViewerID int64
	Bookings []Booking
}
