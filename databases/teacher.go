package databases

// go generate: mockery --name TeacherDatabase

import (
	"context"

	"github.com/mergington-high/school-api/models"
)

const teacherCollectionName = "teachers"

// TeacherDatabase contains the methods to use with the teacher credential store
type TeacherDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Teacher, error)
}

type teacherDatabase struct {
	db DatabaseHelper
}

// NewTeacherDatabase initializes a new instance of teacher database with the provided db connection
func NewTeacherDatabase(db DatabaseHelper) TeacherDatabase {
	return &teacherDatabase{
		db: db,
	}
}

func (t *teacherDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	err := t.db.Collection(teacherCollectionName).FindOne(ctx, filter).Decode(&teacher)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}
