package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mergington-high/school-api/config"
	"github.com/mergington-high/school-api/databases"
	"github.com/mergington-high/school-api/databases/mocks"
	"github.com/mergington-high/school-api/models"
)

func TestNewTeacherDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	teacherDB := databases.NewTeacherDatabase(db)

	assert.NotEmpty(t, teacherDB)
}

func TestTeacherDatabase_FindOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Teacher)
		(*arg).ID = "mrodriguez"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "teachers").Return(collectionHelper)

	teacherDba := databases.NewTeacherDatabase(dbHelper)

	teacher, err := teacherDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, teacher)
	assert.EqualError(t, err, "mocked-error")

	teacher, err = teacherDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.Teacher{ID: "mrodriguez"}, teacher)
	assert.NoError(t, err)
}
