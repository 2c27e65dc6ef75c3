package toggle_availability

import "time"

// Request модель запроса на переключение доступности слота
type Request struct {
	ActorID int64     // ID вызывающего (из заголовка аутентификации)
	OwnerID int64     // ID владельца расписания из пути запроса
	Date    time.Time // Дата слота (без времени)
	Hour    int       // Час начала слота
	Minute  int       // Минута начала слота
}

// Response модель ответа с новым состоянием слота
type Response struct {
	OwnerID int64
	Date    time.Time
	Hour    int
	Minute  int
	State   string // closed | open
}
