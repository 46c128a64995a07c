package models

// Announcement holds the structure for the announcements collection in mongo.
// Date fields are stored as ISO-8601 text; StartDate stays nil when the
// announcement is active immediately, and serializes as null.
type Announcement struct {
	ID             string  `json:"id" bson:"_id"`
	Message        string  `json:"message" bson:"message"`
	StartDate      *string `json:"start_date" bson:"start_date"`
	ExpirationDate string  `json:"expiration_date" bson:"expiration_date"`
	CreatedAt      string  `json:"created_at" bson:"created_at"`
}

// AnnouncementUpsert holds the request body shared by create and update
type AnnouncementUpsert struct {
	Message        string  `json:"message"`
	ExpirationDate *string `json:"expiration_date"`
	StartDate      *string `json:"start_date"`
}

// AnnouncementDeletedResponse confirms a successful delete
type AnnouncementDeletedResponse struct {
	Message string `json:"message"`
}
