package get_analytics

import (
	getAnalytics "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_analytics"
)

// FrequentSlotResponse самое бронируемое время
type FrequentSlotResponse struct {
	Time  string `json:"time"`
	Total int    `json:"total"`
}

// TopBookerResponse один из самых активных зрителей
type TopBookerResponse struct {
	UserID int64   `json:"userId"`
	Name   *string `json:"name,omitempty"`
	Total  int     `json:"total"`
}

// AnalyticsResponse HTTP response model
type AnalyticsResponse struct {
	OwnerID      int64                 `json:"ownerId"`
	FrequentSlot *FrequentSlotResponse `json:"frequentSlot,omitempty"`
	TopBookers   []TopBookerResponse   `json:"topBookers"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAnalytics.Response) *AnalyticsResponse {
	response := &AnalyticsResponse{
		OwnerID:    resp.OwnerID,
		TopBookers: make([]TopBookerResponse, 0, len(resp.TopBookers)),
	}

	if resp.FrequentSlot != nil {
		response.FrequentSlot = &FrequentSlotResponse{
			Time:  resp.FrequentSlot.Time,
			Total: resp.FrequentSlot.Total,
		}
	}

	for _, booker := range resp.TopBookers {
		response.TopBookers = append(response.TopBookers, TopBookerResponse{
			UserID: booker.UserID,
			Name:   booker.Name,
			Total:  booker.Total,
		})
	}

	return response
}
