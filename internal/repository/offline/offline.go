// Package offline provides stores used when the database is unreachable.
// Lookups behave as if nothing exists, every write fails with
// model.ErrStoreUnavailable.
package offline

import (
	"context"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var (
	_ model.UserStore    = UserStore{}
	_ model.StudentStore = StudentStore{}
)

type UserStore struct{}

func (UserStore) GetByUsername(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrNotFound
}

func (UserStore) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, model.ErrStoreUnavailable
}

type StudentStore struct{}

func (StudentStore) GetByEnrollment(context.Context, string) (model.Student, error) {
	return model.Student{}, model.ErrNotFound
}

func (StudentStore) Create(context.Context, model.Student) (model.Student, error) {
	return model.Student{}, model.ErrStoreUnavailable
}

func (StudentStore) Update(context.Context, string, model.StudentUpdate) (model.Student, error) {
	return model.Student{}, model.ErrStoreUnavailable
}

func (StudentStore) Delete(context.Context, string) error {
	return model.ErrStoreUnavailable
}

func (StudentStore) Count(context.Context) (int, error) {
	return 0, model.ErrStoreUnavailable
}

func (StudentStore) Ping(context.Context) error {
	return model.ErrStoreUnavailable
}
