package waitlist

import "errors"

var (
	// ErrEmptyWaitlist возвращается, когда очередь слота пуста
	ErrEmptyWaitlist = errors.New("waitlist.repository: waitlist is empty")

	// ErrDuplicateEntry возвращается, когда зритель уже стоит в очереди слота
	ErrDuplicateEntry = errors.New("waitlist.repository: viewer already queued")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
