package stats

import "errors"

var (
	// ErrNoStats возвращается, когда у владельца ещё нет статистики бронирований
	ErrNoStats = errors.New("stats.repository: no appointment stats")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stats.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stats.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("stats.repository: failed to scan row")
)
