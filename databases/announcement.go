package databases

// go generate: mockery --name AnnouncementDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mergington-high/school-api/models"
)

const announcementCollectionName = "announcements"

// AnnouncementDatabase contains the methods to use with the announcement database
type AnnouncementDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Announcement, error)
	FindOne(ctx context.Context, filter interface{}) (*models.Announcement, error)
	InsertOne(ctx context.Context, announcement models.Announcement) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type announcementDatabase struct {
	db DatabaseHelper
}

// NewAnnouncementDatabase initializes a new instance of announcement database with the provided db connection
func NewAnnouncementDatabase(db DatabaseHelper) AnnouncementDatabase {
	return &announcementDatabase{
		db: db,
	}
}

func (a *announcementDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Announcement, error) {
	cursor, err := a.db.Collection(announcementCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var announcements []models.Announcement
	if err := cursor.Decode(&announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (a *announcementDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Announcement, error) {
	announcement := &models.Announcement{}
	err := a.db.Collection(announcementCollectionName).FindOne(ctx, filter).Decode(&announcement)
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

func (a *announcementDatabase) InsertOne(ctx context.Context, announcement models.Announcement) error {
	_, err := a.db.Collection(announcementCollectionName).InsertOne(ctx, announcement)
	return err
}

func (a *announcementDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return a.db.Collection(announcementCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (a *announcementDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return a.db.Collection(announcementCollectionName).DeleteOne(ctx, filter)
}
