package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
)

// DoctorService административные операции над справочником врачей
type DoctorService struct {
	doctorRepo DoctorStore
	logger     *zap.Logger
}

func NewDoctorService(doctorRepo DoctorStore, logger *zap.Logger) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

// CreateDoctor добавляет врача в справочник
func (s *DoctorService) CreateDoctor(ctx context.Context, name, surname, patronymic string) (*model.Doctor, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)

	if name == "" || surname == "" {
		return nil, fmt.Errorf("doctor name and surname are required")
	}

	doctor := &model.Doctor{
		Name:       name,
		Surname:    surname,
		Patronymic: strings.TrimSpace(patronymic),
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.logger.Info("Doctor created",
		zap.Int64("doctor_id", doctor.ID),
		zap.String("full_name", doctor.FullName()),
	)

	return doctor, nil
}

// ListDoctors возвращает всех врачей
func (s *DoctorService) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

// DeleteDoctor удаляет врача из справочника
func (s *DoctorService) DeleteDoctor(ctx context.Context, id int64) error {
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Doctor deleted", zap.Int64("doctor_id", id))
	return nil
}
