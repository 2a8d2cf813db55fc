package model

import "context"

// StudentStore defines persistence operations for student records.
type StudentStore interface {
	GetByEnrollment(ctx context.Context, enrollmentNumber string) (Student, error)
	Create(ctx context.Context, student Student) (Student, error)
	Update(ctx context.Context, enrollmentNumber string, update StudentUpdate) (Student, error)
	Delete(ctx context.Context, enrollmentNumber string) error
	Count(ctx context.Context) (int, error)
}

// SubjectMark is a mark obtained by a student in a single subject.
type SubjectMark struct {
	SubjectName string `json:"subject_name"`
	Marks       int    `json:"marks" validate:"gte=0,lte=100"`
}

// Student represents a student record.
type Student struct {
	Name             string        `json:"name"`
	EnrollmentNumber string        `json:"enrollment_number" validate:"required"`
	Branch           string        `json:"branch"`
	Year             int           `json:"year"`
	Subjects         []SubjectMark `json:"subjects" validate:"dive"`
}

// SubjectMarkInput is a subject mark as sent by a client.
type SubjectMarkInput struct {
	SubjectName *string `json:"subject_name" validate:"required"`
	Marks       *int    `json:"marks" validate:"required,gte=0,lte=100"`
}

// SubjectMark returns the mark. The input must have passed validation.
func (in SubjectMarkInput) SubjectMark() SubjectMark {
	return SubjectMark{SubjectName: *in.SubjectName, Marks: *in.Marks}
}

// StudentInput is a student record as sent by a client.
// Every field must be present; empty strings and zero values are accepted.
type StudentInput struct {
	Name             *string            `json:"name" validate:"required"`
	EnrollmentNumber *string            `json:"enrollment_number" validate:"required,min=1"`
	Branch           *string            `json:"branch" validate:"required"`
	Year             *int               `json:"year" validate:"required"`
	Subjects         []SubjectMarkInput `json:"subjects" validate:"required,dive"`
}

// Student returns the record. The input must have passed validation.
func (in StudentInput) Student() Student {
	return Student{
		Name:             *in.Name,
		EnrollmentNumber: *in.EnrollmentNumber,
		Branch:           *in.Branch,
		Year:             *in.Year,
		Subjects:         subjectMarks(in.Subjects),
	}
}

// StudentUpdateInput is a partial update as sent by a client.
type StudentUpdateInput struct {
	Name     *string            `json:"name"`
	Branch   *string            `json:"branch"`
	Year     *int               `json:"year"`
	Subjects []SubjectMarkInput `json:"subjects" validate:"omitempty,dive"`
}

// Update returns the store update. The input must have passed validation.
func (in StudentUpdateInput) Update() StudentUpdate {
	return StudentUpdate{
		Name:     in.Name,
		Branch:   in.Branch,
		Year:     in.Year,
		Subjects: subjectMarks(in.Subjects),
	}
}

func subjectMarks(in []SubjectMarkInput) []SubjectMark {
	if in == nil {
		return nil
	}
	out := make([]SubjectMark, 0, len(in))
	for _, m := range in {
		out = append(out, m.SubjectMark())
	}
	return out
}

// StudentUpdate holds the fields of a partial update. Nil fields are left untouched.
type StudentUpdate struct {
	Name     *string       `json:"name"`
	Branch   *string       `json:"branch"`
	Year     *int          `json:"year"`
	Subjects []SubjectMark `json:"subjects"`
}

// IsEmpty reports whether the update carries no fields.
func (u StudentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Branch == nil && u.Year == nil && u.Subjects == nil
}

// Apply returns a copy of s with the provided fields replaced.
func (u StudentUpdate) Apply(s Student) Student {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Branch != nil {
		s.Branch = *u.Branch
	}
	if u.Year != nil {
		s.Year = *u.Year
	}
	if u.Subjects != nil {
		s.Subjects = make([]SubjectMark, len(u.Subjects))
		copy(s.Subjects, u.Subjects)
	}
	return s
}
