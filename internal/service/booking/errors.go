package booking

import "errors"

var (
	// ErrSlotNotFound возвращается при неизвестной комбинации (владелец, дата, время)
	ErrSlotNotFound = errors.New("booking: timeslot not found")

	// ErrNotOwner возвращается, когда вызывающий не владелец расписания
	ErrNotOwner = errors.New("booking: caller is not the schedule owner")

	// ErrSlotOccupied возвращается при попытке закрыть слот с активным бронированием
	// Владелец должен сначала отменить бронирование - это отдельная операция,
	// которая запускает продвижение очереди
	ErrSlotOccupied = errors.New("booking: slot has an active booking")

	// ErrInvalidTransition возвращается, когда операция недопустима в текущем
	// состоянии слота
	ErrInvalidTransition = errors.New("booking: operation invalid for current slot state")

	// ErrDuplicateRequest возвращается, когда зритель уже занимает слот
	// или уже стоит в его очереди
	ErrDuplicateRequest = errors.New("booking: viewer already booked or queued")

	// ErrAccessDenied возвращается, когда отменить бронирование пытается
	// не занимающий слот зритель и не владелец расписания
	ErrAccessDenied = errors.New("booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking: invalid input data")

	// ErrTransientStore возвращается, когда временный сбой хранилища
	// не ушёл после ограниченного числа повторов
	ErrTransientStore = errors.New("booking: transient store failure")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("booking: internal error")
)
