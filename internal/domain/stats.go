package domain

// FrequentSlot суммарная популярность времени (hour, minute) у владельца
type FrequentSlot struct {
	Hour   int
	Minute int
	Total  int
}

// BookerTotal суммарное число бронирований одного зрителя у владельца
type BookerTotal struct {
	BookerUserID int64
	Total        int
}
