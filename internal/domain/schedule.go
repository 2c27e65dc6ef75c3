package domain

import "time"

// Schedule represents one day of an owner's published grid
type Schedule struct {
	ID        int64
	OwnerID   int64
	Date      time.Time
	CreatedAt time.Time
}

// ScheduleDay день расписания вместе со слотами - агрегат для чтения
type ScheduleDay struct {
	Date  time.Time
	Slots []*Timeslot
}

// ViewerBooking одно бронирование зрителя в чужом расписании - строка
// выдачи "мои записи"
type ViewerBooking struct {
	OwnerID int64
	Date    time.Time
	Hour    int
	Minute  int
}

// DateOnly обнуляет время, оставляя только дату
// Все даты расписания хранятся и сравниваются без компоненты времени
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
