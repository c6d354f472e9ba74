package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/repository/base"
)

type ReceptionRepository struct {
	*base.Repository
}

func NewReceptionRepository(pool *pgxpool.Pool) *ReceptionRepository {
	return &ReceptionRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт карточку записи на приём.
// Занятость времени гарантирует ограничение
// UNIQUE (doctor_id, date, time_slot): нарушение транслируется
// в model.ErrReceptionExists, в том числе для проигравшего
// конкурентную вставку.
func (r *ReceptionRepository) Create(ctx context.Context, reception *model.Reception) error {
	query := `
		INSERT INTO receptions (doctor_id, date, time_slot, patient_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		reception.DoctorID,
		reception.Date,
		reception.TimeSlot,
		reception.PatientName,
	).Scan(&reception.ID, &reception.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrReceptionExists
		}
		return fmt.Errorf("create reception: %w", err)
	}

	return nil
}

// Exists проверяет занято ли время у врача на дату
func (r *ReceptionRepository) Exists(ctx context.Context, doctorID int64, date time.Time, timeSlot int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM receptions
			WHERE doctor_id = $1 AND date = $2 AND time_slot = $3
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, doctorID, date, timeSlot).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reception exists: %w", err)
	}

	return exists, nil
}

// GetBookedSlots получает занятые слоты врача на дату,
// отсортированные по времени
func (r *ReceptionRepository) GetBookedSlots(ctx context.Context, doctorID int64, date time.Time) ([]int, error) {
	query := `
		SELECT time_slot
		FROM receptions
		WHERE doctor_id = $1 AND date = $2
		ORDER BY time_slot
	`

	rows, err := r.Query(ctx, query, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("get booked slots: %w", err)
	}
	defer rows.Close()

	var slots []int
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scan booked slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked slots: %w", err)
	}

	return slots, nil
}

// GetByDate получает все записи на дату вместе с данными врачей,
// отсортированные по врачу и времени
func (r *ReceptionRepository) GetByDate(ctx context.Context, date time.Time) ([]*model.Reception, error) {
	query := `
		SELECT r.id, r.doctor_id, r.date, r.time_slot, r.patient_name, r.created_at,
		       d.id, d.name, d.surname, d.patronymic
		FROM receptions r
		JOIN doctors d ON d.id = r.doctor_id
		WHERE r.date = $1
		ORDER BY d.surname, d.name, r.time_slot
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get receptions by date: %w", err)
	}
	defer rows.Close()

	var receptions []*model.Reception
	for rows.Next() {
		var reception model.Reception
		var doctor model.Doctor
		err := rows.Scan(
			&reception.ID,
			&reception.DoctorID,
			&reception.Date,
			&reception.TimeSlot,
			&reception.PatientName,
			&reception.CreatedAt,
			&doctor.ID,
			&doctor.Name,
			&doctor.Surname,
			&doctor.Patronymic,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		reception.Doctor = &doctor
		receptions = append(receptions, &reception)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receptions: %w", err)
	}

	return receptions, nil
}
