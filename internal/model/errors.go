package model

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки валидации записи на приём. Все они видимы вызывающей стороне
// и отдаются наружу как структурированный отказ, а не как сбой.
var (
	ErrUnknownSlot     = errors.New("unknown time slot")
	ErrReceptionExists = errors.New("A booking with fields Doctor, Date and Time already exists.")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrEmptyPatient    = errors.New("patient name is required")
)

// DayOffError дата приходится на выходной день
type DayOffError struct {
	Date time.Time
}

func (e *DayOffError) Error() string {
	return fmt.Sprintf("Selected date %s is a day off.", e.Date.Format(DateLayout))
}

// PastDateError дата уже прошла
type PastDateError struct {
	Date time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("Selected date %s has already passed.", e.Date.Format(DateLayout))
}
