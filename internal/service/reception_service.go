package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/notify"
)

// ReceptionStore хранилище карточек записи на приём
type ReceptionStore interface {
	Create(ctx context.Context, reception *model.Reception) error
	Exists(ctx context.Context, doctorID int64, date time.Time, timeSlot int) (bool, error)
	GetBookedSlots(ctx context.Context, doctorID int64, date time.Time) ([]int, error)
	GetByDate(ctx context.Context, date time.Time) ([]*model.Reception, error)
}

// DoctorStore справочник врачей
type DoctorStore interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id int64) error
}

type ReceptionService struct {
	receptionRepo ReceptionStore
	doctorRepo    DoctorStore
	notifier      *notify.StaffNotifier
	logger        *zap.Logger
}

func NewReceptionService(
	receptionRepo ReceptionStore,
	doctorRepo DoctorStore,
	notifier *notify.StaffNotifier,
	logger *zap.Logger,
) *ReceptionService {
	return &ReceptionService{
		receptionRepo: receptionRepo,
		doctorRepo:    doctorRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// CreateReception проверяет допустимость записи и создаёт карточку приёма.
// Порядок проверок фиксирован: выходной день, прошедшая дата,
// неизвестный слот, занятое время.
func (s *ReceptionService) CreateReception(ctx context.Context, doctorID int64, date time.Time, timeSlot int, patientName string) (*model.Reception, error) {
	patientName = strings.TrimSpace(patientName)
	if patientName == "" {
		return nil, model.ErrEmptyPatient
	}

	date = truncateToDate(date)

	// Проверяем, что дата не является выходным днем
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return nil, &model.DayOffError{Date: date}
	}

	// Проверяем, что дата не меньше сегодняшней. Сравниваются только
	// календарные даты: дата из запроса может быть в другом часовом
	// поясе, чем серверное время, сравнение моментов здесь некорректно.
	if dateBefore(date, time.Now()) {
		return nil, &model.PastDateError{Date: date}
	}

	if !model.IsValidSlot(timeSlot) {
		return nil, model.ErrUnknownSlot
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, model.ErrDoctorNotFound
	}

	// Ранний выход для уже занятого времени. Гарантией от гонки
	// двух одновременных записей служит не эта проверка, а уникальное
	// ограничение в БД: проигравший вставку получит ErrReceptionExists
	// из репозитория.
	exists, err := s.receptionRepo.Exists(ctx, doctorID, date, timeSlot)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrReceptionExists
	}

	reception := &model.Reception{
		DoctorID:    doctorID,
		Date:        date,
		TimeSlot:    timeSlot,
		PatientName: patientName,
	}

	if err := s.receptionRepo.Create(ctx, reception); err != nil {
		return nil, err
	}

	s.logger.Info("Reception created",
		zap.Int64("reception_id", reception.ID),
		zap.Int64("doctor_id", doctorID),
		zap.String("date", reception.DateString()),
		zap.String("time", reception.VerboseTime()),
	)

	reception.Doctor = doctor
	s.notifier.ReceptionCreated(ctx, reception, doctor)

	return reception, nil
}

// FreeSlots возвращает свободные слоты врача на дату в порядке каталога.
// Фильтры выходных и прошедших дат здесь не применяются: это справочный
// запрос на чтение, он отвечает для любой даты.
func (s *ReceptionService) FreeSlots(ctx context.Context, doctorID int64, date time.Time) ([]model.TimeSlot, error) {
	booked, err := s.receptionRepo.GetBookedSlots(ctx, doctorID, truncateToDate(date))
	if err != nil {
		return nil, err
	}

	bookedSet := make(map[int]struct{}, len(booked))
	for _, id := range booked {
		bookedSet[id] = struct{}{}
	}

	free := make([]model.TimeSlot, 0, len(model.TimeSlots()))
	for _, slot := range model.TimeSlots() {
		if _, ok := bookedSet[slot.ID]; !ok {
			free = append(free, slot)
		}
	}

	return free, nil
}

// ReceptionsForDate возвращает все записи на дату (для сводки персоналу)
func (s *ReceptionService) ReceptionsForDate(ctx context.Context, date time.Time) ([]*model.Reception, error) {
	return s.receptionRepo.GetByDate(ctx, truncateToDate(date))
}

// truncateToDate отбрасывает время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateBefore сравнивает календарные даты двух значений,
// игнорируя время суток и часовые пояса
func dateBefore(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()

	if aYear != bYear {
		return aYear < bYear
	}
	if aMonth != bMonth {
		return aMonth < bMonth
	}
	return aDay < bDay
}
