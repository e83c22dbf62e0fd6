package orders

import (
	"strings"

	"ridersync/internal/entities"
)

// Summary - счетчики для сводки курьера. Поиск на них не влияет.
type Summary struct {
	Total     int
	New       int
	Ongoing   int
	Completed int
}

// Summarize считает сводку по уже отфильтрованной по университету коллекции.
func Summarize(list []entities.Order, riderID string) Summary {
	s := Summary{Total: len(list)}
	for _, o := range list {
		switch {
		case o.Status == entities.OrderPending && o.IsUnassigned() && entities.AwaitingVendors(o):
			s.New++
		case o.AssignedTo(riderID) && o.Status == entities.OrderDelivered:
			s.Completed++
		case o.AssignedTo(riderID):
			s.Ongoing++
		}
	}
	return s
}

// Search оставляет заказы, у которых запрос встречается в id, имени клиента или названии продавца.
// Пустой запрос возвращает список как есть.
func Search(list []entities.Order, query string) []entities.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	res := make([]entities.Order, 0, len(list))
	for _, o := range list {
		if matches(o, q) {
			res = append(res, o)
		}
	}
	return res
}

func matches(o entities.Order, q string) bool {
	if strings.Contains(strings.ToLower(o.ID), q) || strings.Contains(strings.ToLower(o.UserName), q) {
		return true
	}
	for _, p := range o.Packs {
		if strings.Contains(strings.ToLower(p.VendorName), q) {
			return true
		}
	}
	return false
}
