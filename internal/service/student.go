package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/model"
	"github.com/dtroode/studentinfo-server/internal/validation"
)

// DefaultStudents are inserted by SeedDefaults into an empty store.
var DefaultStudents = []model.Student{
	{
		Name:             "Alice Smith",
		EnrollmentNumber: "ENR001",
		Branch:           "Computer Science",
		Year:             3,
		Subjects: []model.SubjectMark{
			{SubjectName: "Data Structures", Marks: 85},
			{SubjectName: "Algorithms", Marks: 92},
			{SubjectName: "Database Systems", Marks: 78},
		},
	},
	{
		Name:             "Bob Johnson",
		EnrollmentNumber: "ENR002",
		Branch:           "Mechanical Engineering",
		Year:             2,
		Subjects: []model.SubjectMark{
			{SubjectName: "Thermodynamics", Marks: 76},
			{SubjectName: "Fluid Mechanics", Marks: 88},
			{SubjectName: "Engineering Drawing", Marks: 95},
		},
	},
}

type Student struct {
	store     model.StudentStore
	archive   model.Storage
	validator *validation.Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewStudent creates the student service. archive may be nil to disable archiving.
func NewStudent(
	store model.StudentStore,
	archive model.Storage,
	validator *validation.Validator,
	logger *logger.Logger,
) *Student {
	return &Student{
		store:     store,
		archive:   archive,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Student) Create(ctx context.Context, in model.StudentInput) (model.Student, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Student{}, err
	}
	student := in.Student()

	_, err := s.store.GetByEnrollment(ctx, student.EnrollmentNumber)
	switch {
	case err == nil:
		return model.Student{}, model.ErrDuplicateEnrollment
	case !errors.Is(err, model.ErrNotFound):
		s.logger.Error("Student service: failed to get student",
			"enrollment_number", student.EnrollmentNumber,
			"error", err.Error())
		return model.Student{}, fmt.Errorf("failed to get student: %w", err)
	}

	created, err := s.store.Create(ctx, student)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEnrollment) {
			return model.Student{}, model.ErrDuplicateEnrollment
		}
		s.logger.Error("Student service: failed to create student",
			"enrollment_number", student.EnrollmentNumber,
			"error", err.Error())
		return model.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student service: student created",
		"enrollment_number", created.EnrollmentNumber)

	return created, nil
}

func (s *Student) Get(ctx context.Context, enrollmentNumber string) (model.Student, error) {
	student, err := s.store.GetByEnrollment(ctx, enrollmentNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Student{}, model.ErrNotFound
		}
		return model.Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// Update applies the provided fields only.
func (s *Student) Update(ctx context.Context, enrollmentNumber string, in model.StudentUpdateInput) (model.Student, error) {
	update := in.Update()
	if update.IsEmpty() {
		return model.Student{}, model.ErrNoUpdateFields
	}
	if err := s.validator.Struct(in); err != nil {
		return model.Student{}, err
	}

	updated, err := s.store.Update(ctx, enrollmentNumber, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Student{}, model.ErrNotFound
		}
		s.logger.Error("Student service: failed to update student",
			"enrollment_number", enrollmentNumber,
			"error", err.Error())
		return model.Student{}, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info("Student service: student updated",
		"enrollment_number", enrollmentNumber)

	return updated, nil
}

// Delete removes the student, archiving a JSON copy first when storage is configured.
func (s *Student) Delete(ctx context.Context, enrollmentNumber string) error {
	student, err := s.store.GetByEnrollment(ctx, enrollmentNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	if s.archive != nil {
		if err := s.archiveStudent(ctx, student); err != nil {
			s.logger.Warn("Student service: failed to archive student",
				"enrollment_number", enrollmentNumber,
				"error", err.Error())
		}
	}

	if err := s.store.Delete(ctx, enrollmentNumber); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Student service: failed to delete student",
			"enrollment_number", enrollmentNumber,
			"error", err.Error())
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info("Student service: student deleted",
		"enrollment_number", enrollmentNumber)

	return nil
}

// SeedDefaults inserts DefaultStudents when the store is empty.
func (s *Student) SeedDefaults(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		if errors.Is(err, model.ErrStoreUnavailable) {
			s.logger.Warn("Student service: store unavailable, skipping seed")
			return nil
		}
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		s.logger.Debug("Student service: store not empty, skipping seed",
			"count", count)
		return nil
	}

	for _, student := range DefaultStudents {
		if _, err := s.store.Create(ctx, student); err != nil && !errors.Is(err, model.ErrDuplicateEnrollment) {
			return fmt.Errorf("failed to seed student %s: %w", student.EnrollmentNumber, err)
		}
	}

	s.logger.Info("Student service: seeded default students",
		"count", len(DefaultStudents))

	return nil
}

func (s *Student) archiveStudent(ctx context.Context, student model.Student) error {
	data, err := json.Marshal(student)
	if err != nil {
		return fmt.Errorf("failed to marshal student: %w", err)
	}

	key := ArchiveKey(student.EnrollmentNumber, s.now())
	return s.archive.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json")
}

// ArchiveKey returns the object name for an archived student record.
func ArchiveKey(enrollmentNumber string, at time.Time) string {
	return fmt.Sprintf("students/%s/%d-%s.json", enrollmentNumber, at.UnixNano(), uuid.NewString())
}
