package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var _ model.StudentStore = (*StudentRepository)(nil)

type StudentRepository struct {
	db DBTX
}

func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `enrollment_number, name, branch, year, subjects`

func scanStudent(row pgx.Row) (model.Student, error) {
	var (
		student  model.Student
		subjects []byte
	)
	if err := row.Scan(&student.EnrollmentNumber, &student.Name, &student.Branch, &student.Year, &subjects); err != nil {
		return model.Student{}, err
	}
	if err := json.Unmarshal(subjects, &student.Subjects); err != nil {
		return model.Student{}, fmt.Errorf("failed to decode subjects: %w", err)
	}
	if student.Subjects == nil {
		student.Subjects = []model.SubjectMark{}
	}
	return student, nil
}

func (r *StudentRepository) GetByEnrollment(ctx context.Context, enrollmentNumber string) (model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE enrollment_number = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, enrollmentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, model.ErrNotFound
		}
		return model.Student{}, fmt.Errorf("failed to get student: %w", err)
	}

	return student, nil
}

func (r *StudentRepository) Create(ctx context.Context, student model.Student) (model.Student, error) {
	subjects, err := encodeSubjects(student.Subjects)
	if err != nil {
		return model.Student{}, err
	}

	query := `INSERT INTO students (enrollment_number, name, branch, year, subjects)
			  VALUES ($1, $2, $3, $4, $5::jsonb)
			  RETURNING ` + studentColumns

	saved, err := scanStudent(r.db.QueryRow(ctx, query,
		student.EnrollmentNumber, student.Name, student.Branch, student.Year, subjects,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Student{}, model.ErrDuplicateEnrollment
		}
		return model.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	return saved, nil
}

func (r *StudentRepository) Update(ctx context.Context, enrollmentNumber string, update model.StudentUpdate) (model.Student, error) {
	var subjects *string
	if update.Subjects != nil {
		encoded, err := encodeSubjects(update.Subjects)
		if err != nil {
			return model.Student{}, err
		}
		subjects = &encoded
	}

	query := `UPDATE students SET
				name = COALESCE($2, name),
				branch = COALESCE($3, branch),
				year = COALESCE($4, year),
				subjects = COALESCE($5::jsonb, subjects),
				updated_at = NOW()
			  WHERE enrollment_number = $1
			  RETURNING ` + studentColumns

	saved, err := scanStudent(r.db.QueryRow(ctx, query,
		enrollmentNumber, update.Name, update.Branch, update.Year, subjects,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, model.ErrNotFound
		}
		return model.Student{}, fmt.Errorf("failed to update student: %w", err)
	}

	return saved, nil
}

func (r *StudentRepository) Delete(ctx context.Context, enrollmentNumber string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE enrollment_number = $1`, enrollmentNumber)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func encodeSubjects(subjects []model.SubjectMark) (string, error) {
	if subjects == nil {
		subjects = []model.SubjectMark{}
	}
	b, err := json.Marshal(subjects)
	if err != nil {
		return "", fmt.Errorf("failed to encode subjects: %w", err)
	}
	return string(b), nil
}
