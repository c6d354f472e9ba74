package model

import "fmt"

// TimeSlot один из фиксированных часовых слотов приёма.
// Каталог статичен: 9 слотов с 09:00 до 17:00, по одному в час.
type TimeSlot struct {
	ID    int
	Label string
}

// timeSlots каталог слотов в порядке возрастания времени.
// Порядок значим: в таком же порядке слоты отдаются наружу.
var timeSlots = []TimeSlot{
	{0, "09:00"},
	{1, "10:00"},
	{2, "11:00"},
	{3, "12:00"},
	{4, "13:00"},
	{5, "14:00"},
	{6, "15:00"},
	{7, "16:00"},
	{8, "17:00"},
}

// TimeSlots возвращает копию каталога слотов
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, len(timeSlots))
	copy(slots, timeSlots)
	return slots
}

// SlotLabel возвращает метку слота вида "09:00"
func SlotLabel(id int) (string, error) {
	if !IsValidSlot(id) {
		return "", ErrUnknownSlot
	}
	return timeSlots[id].Label, nil
}

// IsValidSlot проверяет что id слота входит в каталог
func IsValidSlot(id int) bool {
	return id >= 0 && id < len(timeSlots)
}

// MarshalJSON сериализует слот в пару [id, "HH:MM"]
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`[%d,%q]`, s.ID, s.Label)), nil
}
