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

func TestNewAnnouncementDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	announcementDB := databases.NewAnnouncementDatabase(db)

	assert.NotEmpty(t, announcementDB)
}

func TestAnnouncementDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
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
		arg := args.Get(0).(**models.Announcement)
		(*arg).ID = "mocked-announcement"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "announcements").Return(collectionHelper)

	// Create new database with mocked Database interface
	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	announcement, err := announcementDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, announcement)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with a different filter for the correct
	// result
	announcement, err = announcementDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.Announcement{ID: "mocked-announcement"}, announcement)
	assert.NoError(t, err)
}

func TestAnnouncementDatabase_Find(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelperErr databases.CursorHelper
	var cursorHelperCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelperErr = &mocks.CursorHelper{}
	cursorHelperCorrect = &mocks.CursorHelper{}

	cursorHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	cursorHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Announcement)
		*arg = []models.Announcement{{ID: "mocked-announcement"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(cursorHelperErr, nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorHelperCorrect, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "announcements").Return(collectionHelper)

	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	announcements, err := announcementDba.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, announcements)
	assert.EqualError(t, err, "mocked-error")

	announcements, err = announcementDba.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.Announcement{{ID: "mocked-announcement"}}, announcements)
	assert.NoError(t, err)
}

func TestAnnouncementDatabase_InsertOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), models.Announcement{ID: "boom"}).
		Return(nil, errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), models.Announcement{ID: "fine"}).
		Return("fine", nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "announcements").Return(collectionHelper)

	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	err := announcementDba.InsertOne(context.Background(), models.Announcement{ID: "boom"})
	assert.EqualError(t, err, "mocked-error")

	err = announcementDba.InsertOne(context.Background(), models.Announcement{ID: "fine"})
	assert.NoError(t, err)
}

func TestAnnouncementDatabase_DeleteOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "known"}).
		Return(int64(1), nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "unknown"}).
		Return(int64(0), nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "announcements").Return(collectionHelper)

	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	deleted, err := announcementDba.DeleteOne(context.Background(), bson.M{"_id": "known"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = announcementDba.DeleteOne(context.Background(), bson.M{"_id": "unknown"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestAnnouncementDatabase_UpdateOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", context.Background(), bson.M{"_id": "a-1"}, mock.Anything).
		Return(nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "announcements").Return(collectionHelper)

	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	err := announcementDba.UpdateOne(context.Background(), bson.M{"_id": "a-1"}, bson.M{"$set": bson.M{"message": "hi"}})
	assert.NoError(t, err)
}
