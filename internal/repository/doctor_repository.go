package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/repository/base"
)

type DoctorRepository struct {
	*base.Repository
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового врача
func (r *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, surname, patronymic)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		doctor.Name,
		doctor.Surname,
		doctor.Patronymic,
	).Scan(&doctor.ID)

	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	return nil
}

// GetByID получает врача по ID
func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, name, surname, patronymic
		FROM doctors
		WHERE id = $1
	`

	var doctor model.Doctor
	err := r.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Surname,
		&doctor.Patronymic,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor by id: %w", err)
	}

	return &doctor, nil
}

// List получает всех врачей, отсортированных по фамилии
func (r *DoctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, surname, patronymic
		FROM doctors
		ORDER BY surname, name, patronymic
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*model.Doctor
	for rows.Next() {
		var doctor model.Doctor
		err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Surname,
			&doctor.Patronymic,
		)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, &doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctors: %w", err)
	}

	return doctors, nil
}

// Delete удаляет врача
func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM doctors WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}

	if affected == 0 {
		return model.ErrDoctorNotFound
	}

	return nil
}
