package dto

// DayGroup holds the entries that fall on one calendar date.
type DayGroup[T any] struct {
	Date  string `json:"date"`
	Items []T    `json:"items"`
}

// GroupByDate groups items by the date key, keeping the input order both
// across and inside groups.
func GroupByDate[T any](items []T, dateOf func(T) string) []DayGroup[T] {
	groups := []DayGroup[T]{}
	index := map[string]int{}

	for _, it := range items {
		d := dateOf(it)
		i, ok := index[d]
		if !ok {
			i = len(groups)
			index[d] = i
			groups = append(groups, DayGroup[T]{Date: d})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// GroupBookingsByPet maps each pet to its bookings grouped by date.
func GroupBookingsByPet(items []BookingListDTO) map[uint][]DayGroup[BookingListDTO] {
	byPet := map[uint][]BookingListDTO{}
	for _, b := range items {
		byPet[b.PetID] = append(byPet[b.PetID], b)
	}

	out := make(map[uint][]DayGroup[BookingListDTO], len(byPet))
	for petID, list := range byPet {
		out[petID] = GroupByDate(list, func(b BookingListDTO) string { return b.Date })
	}
	return out
}
