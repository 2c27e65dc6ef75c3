package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	ActorID int64     // ID вызывающего (из заголовка аутентификации)
	OwnerID int64     // ID владельца расписания
	Date    time.Time // Дата слота (без времени)
	Hour    int       // Час начала слота
	Minute  int       // Минута начала слота
}

// Response модель ответа на отмену
type Response struct {
	OwnerID int64
	Date    time.Time
	Hour    int
	Minute  int

	State string // open | booked

	// PromotedViewerID зритель, продвинутый из головы очереди,
	// nil если очередь была пуста
	PromotedViewerID *int64

	// WaitlistCount длина очереди после продвижения
	WaitlistCount int
}
