package domain

import (
	"fmt"
	"time"
)

// SlotState represents the lifecycle state of a timeslot
type SlotState string

const (
	// SlotClosed слот закрыт владельцем: available=false, без бронирования
	SlotClosed SlotState = "closed"
	// SlotOpen слот открыт для бронирования: available=true, без бронирования
	SlotOpen SlotState = "open"
	// SlotBooked слот занят: available=true, bookedByUserID установлен
	SlotBooked SlotState = "booked"
)

// Timeslot represents a single bookable cell in an owner's schedule
type Timeslot struct {
	ID         int64
	ScheduleID int64
	Hour       int
	Minute     int

	// Available=true означает "слот имеет содержимое": открыт или занят.
	// Занятый слот всегда available=true; закрытый владельцем - false.
	Available      bool
	BookedByUserID *int64

	// WaitlistCount производное поле, заполняется при чтении расписания
	WaitlistCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State returns the state-machine state derived from the slot fields
func (t *Timeslot) State() SlotState {
	if t.BookedByUserID != nil {
		return SlotBooked
	}
	if t.Available {
		return SlotOpen
	}
	return SlotClosed
}

// IsBookedBy returns true if the slot is currently occupied by the given user
func (t *Timeslot) IsBookedBy(userID int64) bool {
	return t.BookedByUserID != nil && *t.BookedByUserID == userID
}

// TimeLabel returns the slot time formatted as HH:MM
func (t *Timeslot) TimeLabel() string {
	return FormatSlotTime(t.Hour, t.Minute)
}

// SlotKey уникальный ключ слота: (владелец, дата, час, минута)
type SlotKey struct {
	OwnerID int64
	Date    time.Time
	Hour    int
	Minute  int
}

// String возвращает строковое представление ключа
// Используется как ключ арены per-slot мьютексов и в логах
func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s:%02d:%02d", k.OwnerID, k.Date.Format(DateFormat), k.Hour, k.Minute)
}

// Validate проверяет, что время ключа принадлежит сетке слотов
func (k SlotKey) Validate() error {
	if k.OwnerID <= 0 {
		return fmt.Errorf("slot key: ownerID must be positive")
	}
	if k.Date.IsZero() {
		return fmt.Errorf("slot key: date is required")
	}
	if !IsGridTime(k.Hour, k.Minute) {
		return fmt.Errorf("slot key: %s is not on the slot grid", FormatSlotTime(k.Hour, k.Minute))
	}
	return nil
}

// FormatSlotTime форматирует час и минуту как HH:MM
func FormatSlotTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// GridTime одна позиция дневной сетки слотов
type GridTime struct {
	Hour   int
	Minute int
}

// GridTimes возвращает все позиции дневной сетки по порядку
// Генерация с GridStartHour:00 шагом GridStepMinutes, пока час не выйдет за GridEndHour
func GridTimes() []GridTime {
	times := make([]GridTime, 0, 16)

	hour := GridStartHour
	minute := 0
	for hour <= GridEndHour {
		times = append(times, GridTime{Hour: hour, Minute: minute})
		minute += GridStepMinutes
		if minute >= 60 {
			minute -= 60
			hour++
		}
	}

	return times
}

// IsGridTime проверяет принадлежность времени дневной сетке
func IsGridTime(hour, minute int) bool {
	for _, gt := range GridTimes() {
		if gt.Hour == hour && gt.Minute == minute {
			return true
		}
	}
	return false
}
