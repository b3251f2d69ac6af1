package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStudentRegistry struct {
	students  []*model.Student
	taken     map[string]bool
	existCall int
}

func (f *fakeStudentRegistry) Create(_ context.Context, student *model.Student) error {
	student.ID = int64(len(f.students) + 1)
	f.students = append(f.students, student)
	return nil
}

func (f *fakeStudentRegistry) GetByID(_ context.Context, id int64) (*model.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRegistry) GetByCheckinCode(_ context.Context, code string) (*model.Student, error) {
	for _, s := range f.students {
		if s.CheckinCode == code {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRegistry) CheckinCodeExists(_ context.Context, code string) (bool, error) {
	f.existCall++
	return f.taken[code], nil
}

func TestCreateStudent_GeneratesCheckinCode(t *testing.T) {
	repo := &fakeStudentRegistry{taken: map[string]bool{}}
	svc := NewStudentService(repo, zap.NewNop())

	student := &model.Student{FirstName: "Аня", LastName: "Иванова"}
	require.NoError(t, svc.CreateStudent(context.Background(), student))

	assert.Len(t, student.CheckinCode, 8)
	assert.NotContains(t, student.CheckinCode, "=")

	// Второй ученик получает другой код
	other := &model.Student{FirstName: "Пётр"}
	require.NoError(t, svc.CreateStudent(context.Background(), other))
	assert.NotEqual(t, student.CheckinCode, other.CheckinCode)
}

func TestCreateStudent_KeepsProvidedCode(t *testing.T) {
	repo := &fakeStudentRegistry{taken: map[string]bool{}}
	svc := NewStudentService(repo, zap.NewNop())

	student := &model.Student{FirstName: "Аня", CheckinCode: "CUSTOM01"}
	require.NoError(t, svc.CreateStudent(context.Background(), student))

	assert.Equal(t, "CUSTOM01", student.CheckinCode)
	assert.Zero(t, repo.existCall)
}
