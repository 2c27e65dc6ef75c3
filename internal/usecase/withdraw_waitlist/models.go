package withdraw_waitlist

import "time"

// Request модель запроса на выход из очереди ожидания
type Request struct {
	ViewerID int64     // ID зрителя (из заголовка аутентификации)
	OwnerID  int64     // ID владельца расписания
	Date     time.Time // Дата слота (без времени)
	Hour     int       // Час начала слота
	Minute   int       // Минута начала слота
}
