package submit_appointments

import "time"

// Статусы обработки одного выбранного слота
const (
	StatusBooked     = "booked"     // заявка выиграла слот
	StatusWaitlisted = "waitlisted" // слот занят, зритель поставлен в очередь
	StatusFailed     = "failed"     // слот не обработан, причина в Reason
)

// Причины отказа по отдельному слоту
const (
	ReasonSlotNotFound     = "slot_not_found"
	ReasonSlotClosed       = "slot_closed"
	ReasonDuplicateRequest = "duplicate_request"
	ReasonTransientFailure = "transient_store_failure"
	ReasonInternalError    = "internal_error"
)

// Selection один выбранный зрителем слот
type Selection struct {
	OwnerID int64     // ID владельца расписания
	Date    time.Time // Дата слота (без времени)
	Hour    int       // Час начала слота
	Minute  int       // Минута начала слота
}

// Request модель заявки зрителя на набор слотов
type Request struct {
	ViewerID   int64       // ID зрителя (из заголовка аутентификации)
	Selections []Selection // Выбранные слоты в порядке кликов
}

// SlotOutcome результат обработки одного слота заявки
type SlotOutcome struct {
	OwnerID int64
	Date    time.Time
	Hour    int
	Minute  int

	Status   string // booked | waitlisted | failed
	Position *int   // позиция в очереди, только для waitlisted
	Reason   string // причина отказа, только для failed
}

// Response модель ответа на заявку
// Слоты обрабатываются независимо: отказ по одному не откатывает остальные
type Response struct {
	Results []SlotOutcome
}
