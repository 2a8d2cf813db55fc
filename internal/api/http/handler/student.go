package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/model"
)

// StudentService defines student record operations.
type StudentService interface {
	Create(ctx context.Context, student model.StudentInput) (model.Student, error)
	Get(ctx context.Context, enrollmentNumber string) (model.Student, error)
	Update(ctx context.Context, enrollmentNumber string, update model.StudentUpdateInput) (model.Student, error)
	Delete(ctx context.Context, enrollmentNumber string) error
}

// Student handles HTTP endpoints for student records.
type Student struct {
	studentService StudentService
	logger         *logger.Logger
}

// NewStudent creates a new Student handler.
func NewStudent(studentService StudentService, logger *logger.Logger) *Student {
	return &Student{
		studentService: studentService,
		logger:         logger,
	}
}

func (h *Student) Create(w http.ResponseWriter, r *http.Request) {
	var student model.StudentInput
	if err := decodeJSON(w, r, &student); err != nil {
		writeBodyError(w, err)
		return
	}

	created, err := h.studentService.Create(r.Context(), student)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEnrollment) {
			WriteDetail(w, http.StatusBadRequest,
				fmt.Sprintf("Student with enrollment number '%s' already exists.", *student.EnrollmentNumber))
			return
		}
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

func (h *Student) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.studentService.Get(r.Context(), r.PathValue("enrollment_number"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, student)
}

func (h *Student) Update(w http.ResponseWriter, r *http.Request) {
	var update model.StudentUpdateInput
	if err := decodeJSON(w, r, &update); err != nil {
		writeBodyError(w, err)
		return
	}

	student, err := h.studentService.Update(r.Context(), r.PathValue("enrollment_number"), update)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, student)
}

func (h *Student) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.studentService.Delete(r.Context(), r.PathValue("enrollment_number")); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
