package model

import "time"

// DateLayout формат даты во внешних интерфейсах (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// Reception карточка записи пациента на приём.
// Тройка (DoctorID, Date, TimeSlot) уникальна: на одно время к одному
// врачу может записаться только один пациент.
type Reception struct {
	ID          int64     `json:"id"`
	DoctorID    int64     `json:"doctor_id"`
	Date        time.Time `json:"-"`
	TimeSlot    int       `json:"time"`
	PatientName string    `json:"patient_name"`
	CreatedAt   time.Time `json:"created_at"`

	// Заполняется при необходимости, не из БД
	Doctor *Doctor `json:"doctor,omitempty"`
}

// DateString возвращает дату приёма в формате DD.MM.YYYY
func (r *Reception) DateString() string {
	return r.Date.Format(DateLayout)
}

// VerboseTime возвращает время приёма вида "09:00".
// Для слота вне каталога возвращает пустую строку.
func (r *Reception) VerboseTime() string {
	label, err := SlotLabel(r.TimeSlot)
	if err != nil {
		return ""
	}
	return label
}
