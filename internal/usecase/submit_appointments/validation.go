package submit_appointments

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ViewerID <= 0 {
		return fmt.Errorf("%w: viewerID must be positive", ErrInvalidInput)
	}

	if len(req.Selections) == 0 {
		return ErrEmptySelection
	}

	for i, sel := range req.Selections {
		key := selectionKey(sel)
		if err := key.Validate(); err != nil {
			return fmt.Errorf("%w: selection %d: %v", ErrInvalidInput, i, err)
		}
		if sel.OwnerID == req.ViewerID {
			return fmt.Errorf("%w: selection %d: viewer cannot book own slot", ErrInvalidInput, i)
		}
	}

	return nil
}

// collapseSelections схлопывает повторные клики по одному слоту
//
// Повторный выбор уже выбранного слота снимает выбор: чётное число вхождений
// убирает слот из заявки, нечётное оставляет одно. Порядок первых вхождений
// сохраняется
func collapseSelections(req *Request) []domain.SlotKey {
	order := make([]string, 0, len(req.Selections))
	byKey := make(map[string]domain.SlotKey, len(req.Selections))
	clicks := make(map[string]int, len(req.Selections))

	for _, sel := range req.Selections {
		key := selectionKey(sel)
		id := key.String()

		if _, ok := byKey[id]; !ok {
			byKey[id] = key
			order = append(order, id)
		}
		clicks[id]++
	}

	keys := make([]domain.SlotKey, 0, len(order))
	for _, id := range order {
		if clicks[id]%2 == 1 {
			keys = append(keys, byKey[id])
		}
	}
	return keys
}

func selectionKey(sel Selection) domain.SlotKey {
	return domain.SlotKey{
		OwnerID: sel.OwnerID,
		Date:    domain.DateOnly(sel.Date),
		Hour:    sel.Hour,
		Minute:  sel.Minute,
	}
}
