package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studentinfo-server/internal/model"
)

func TestUserStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewUserStore()

	_, err := s.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, model.ErrNotFound)

	saved, err := s.Create(ctx, model.User{Username: "alice", Email: "a@example.com", HashedPassword: "h"})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	_, err = s.Create(ctx, model.User{Username: "alice"})
	assert.ErrorIs(t, err, model.ErrDuplicateUsername)

	require.NoError(t, s.SetDisabled(ctx, "alice", true))
	got, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.Disabled)

	assert.ErrorIs(t, s.SetDisabled(ctx, "bob", true), model.ErrNotFound)
}

func TestStudentStore_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStudentStore()
	student := model.Student{
		EnrollmentNumber: "ENR100",
		Name:             "Test Student",
		Branch:           "Physics",
		Year:             1,
		Subjects:         []model.SubjectMark{{SubjectName: "Optics", Marks: 70}},
	}

	_, err := s.Create(ctx, student)
	require.NoError(t, err)

	_, err = s.Create(ctx, student)
	assert.ErrorIs(t, err, model.ErrDuplicateEnrollment)

	got, err := s.GetByEnrollment(ctx, "ENR100")
	require.NoError(t, err)
	assert.Equal(t, student, got)

	year := 2
	updated, err := s.Update(ctx, "ENR100", model.StudentUpdate{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Year)
	assert.Equal(t, student.Subjects, updated.Subjects)

	_, err = s.Update(ctx, "ENR404", model.StudentUpdate{Year: &year})
	assert.ErrorIs(t, err, model.ErrNotFound)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, s.Delete(ctx, "ENR100"))
	assert.ErrorIs(t, s.Delete(ctx, "ENR100"), model.ErrNotFound)

	_, err = s.GetByEnrollment(ctx, "ENR100")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, s.Ping(ctx))
}

func TestStudentStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStudentStore()
	_, err := s.Create(ctx, model.Student{
		EnrollmentNumber: "ENR1",
		Subjects:         []model.SubjectMark{{SubjectName: "A", Marks: 1}},
	})
	require.NoError(t, err)

	got, err := s.GetByEnrollment(ctx, "ENR1")
	require.NoError(t, err)
	got.Subjects[0].Marks = 99

	again, err := s.GetByEnrollment(ctx, "ENR1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Subjects[0].Marks)
}

func TestStudentStore_ConcurrentCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStudentStore()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(ctx, model.Student{EnrollmentNumber: "ENR-RACE", Name: fmt.Sprint(i)})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
