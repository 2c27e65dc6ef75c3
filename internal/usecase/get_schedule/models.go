package get_schedule

// Request модель запроса окна расписания
type Request struct {
	OwnerID int64 // ID владельца расписания из пути запроса
}

// BookedBy зритель, занимающий слот
type BookedBy struct {
	UserID int64
	// Name отображаемое имя из ProfileService,
	// nil при graceful degradation
	Name *string
}

// Slot один слот дня в ответе
type Slot struct {
	Time          string // время начала в формате HH:MM
	State         string // closed | open | booked
	BookedBy      *BookedBy
	WaitlistCount int
}

// Day один день окна расписания
type Day struct {
	Date  string // дата в формате YYYY-MM-DD
	Slots []Slot
}

// Response модель ответа с окном расписания
type Response struct {
	OwnerID int64
	Days    []Day
}
