package models

// Teacher holds the structure for the teachers collection in mongo. The
// document is keyed by the teacher's username; management routes only check
// that the document exists.
type Teacher struct {
	ID          string `json:"id" bson:"_id"`
	DisplayName string `json:"display_name" bson:"display_name"`
}
