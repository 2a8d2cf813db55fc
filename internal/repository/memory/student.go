package memory

import (
	"context"
	"sync"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var _ model.StudentStore = (*StudentStore)(nil)

// StudentStore keeps students in a map keyed by enrollment number.
type StudentStore struct {
	mu       sync.RWMutex
	students map[string]model.Student
}

// NewStudentStore creates an empty student store.
func NewStudentStore() *StudentStore {
	return &StudentStore{students: make(map[string]model.Student)}
}

func (s *StudentStore) GetByEnrollment(_ context.Context, enrollmentNumber string) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[enrollmentNumber]
	if !ok {
		return model.Student{}, model.ErrNotFound
	}
	return clone(st), nil
}

func (s *StudentStore) Create(_ context.Context, student model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.EnrollmentNumber]; ok {
		return model.Student{}, model.ErrDuplicateEnrollment
	}
	s.students[student.EnrollmentNumber] = clone(student)
	return clone(student), nil
}

func (s *StudentStore) Update(_ context.Context, enrollmentNumber string, update model.StudentUpdate) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[enrollmentNumber]
	if !ok {
		return model.Student{}, model.ErrNotFound
	}
	st = update.Apply(st)
	s.students[enrollmentNumber] = st
	return clone(st), nil
}

func (s *StudentStore) Delete(_ context.Context, enrollmentNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[enrollmentNumber]; !ok {
		return model.ErrNotFound
	}
	delete(s.students, enrollmentNumber)
	return nil
}

func (s *StudentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.students), nil
}

// Ping always succeeds.
func (s *StudentStore) Ping(_ context.Context) error {
	return nil
}

func clone(st model.Student) model.Student {
	subjects := make([]model.SubjectMark, len(st.Subjects))
	copy(subjects, st.Subjects)
	st.Subjects = subjects
	return st
}
