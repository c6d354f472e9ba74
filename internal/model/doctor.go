package model

// Doctor врач клиники. Справочник ведётся администратором,
// сервис записи его не изменяет.
type Doctor struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic"`
}

// FullName возвращает ФИО врача для отображения
func (d *Doctor) FullName() string {
	return d.Surname + " " + d.Name + " " + d.Patronymic
}
