package domain

// Параметры недельной сетки слотов
// Сетка идёт с 08:00 до 17:45 с шагом 45 минут - 14 слотов в день
const (
	GridStartHour   = 8
	GridEndHour     = 17
	GridStepMinutes = 45
)

// ScheduleWindowDays размер скользящего окна расписания владельца
// Прошедшие дни удаляются, окно достраивается вперёд до этого размера
const ScheduleWindowDays = 7

// MaxSelectionsPerBatch максимум различных слотов в одной заявке зрителя
const MaxSelectionsPerBatch = 3

// TopBookersLimit количество записей в рейтинге самых активных бронирующих
const TopBookersLimit = 3

// Параметры повторов при временных сбоях хранилища
// Транзакция повторяется целиком; под per-slot блокировкой повтор читает
// то же состояние и вычисляет тот же переход
const (
	StoreRetryAttempts  = 3
	StoreRetryBackoffMS = 50
)

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
