package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mergington-high/school-api/api"
	"github.com/mergington-high/school-api/config"
	"github.com/mergington-high/school-api/databases"
	"github.com/mergington-high/school-api/models"
)

// Announcement exported for testing purposes
type Announcement struct {
	ADB databases.AnnouncementDatabase
	TDB databases.TeacherDatabase
}

// byCreatedAtDesc orders announcements most recent first; documents missing
// created_at sort last
func byCreatedAtDesc() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// validateTeacher checks that the caller-supplied teacher_username exists in
// the credential store. Existence is the whole check.
func (a Announcement) validateTeacher(ctx context.Context, r *http.Request) error {
	username := r.URL.Query().Get("teacher_username")

	zap.S().Debugf("teacher_username: '%v'", username)

	_, err := a.TDB.FindOne(ctx, bson.M{"_id": username})
	return err
}

// ActiveAnnouncementsHandler returns the announcements visible right now for
// public display. A stored record with a missing or unparseable
// expiration_date fails the whole listing rather than being skipped.
func (a Announcement) ActiveAnnouncementsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.ADB.Find(ctx, bson.D{}, byCreatedAtDesc())
	if err != nil {
		config.ErrorStatus("failed to get announcements", http.StatusInternalServerError, w, err)
		return
	}

	// one snapshot of now for every record in this listing
	now := time.Now().UTC()

	active := []models.Announcement{}
	for _, announcement := range dbResp {
		startDate, err := ParseDate(announcement.StartDate, "start_date", false)
		if err != nil {
			config.ErrorStatus("failed to parse stored announcement", http.StatusBadRequest, w, err)
			return
		}
		expirationDate, err := ParseDate(optionalString(announcement.ExpirationDate), "expiration_date", true)
		if err != nil {
			config.ErrorStatus("failed to parse stored announcement", http.StatusBadRequest, w, err)
			return
		}

		if expirationDate.Before(now) {
			continue
		}
		if startDate != nil && startDate.After(now) {
			continue
		}
		active = append(active, announcement)
	}

	b, err := json.Marshal(active)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AllAnnouncementsHandler returns every announcement, unfiltered, for the
// authenticated management UI
func (a Announcement) AllAnnouncementsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.validateTeacher(ctx, r); err != nil {
		config.ErrorStatus("invalid teacher credentials", http.StatusUnauthorized, w, err)
		return
	}

	dbResp, err := a.ADB.Find(ctx, bson.D{}, byCreatedAtDesc())
	if err != nil {
		config.ErrorStatus("failed to get announcements", http.StatusInternalServerError, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Announcement{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateAnnouncementHandler creates a new announcement. Expiration date is
// required; the service assigns id and created_at.
func (a Announcement) CreateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.validateTeacher(ctx, r); err != nil {
		config.ErrorStatus("invalid teacher credentials", http.StatusUnauthorized, w, err)
		return
	}

	var payload models.AnnouncementUpsert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	fields, err := validateUpsert(payload)
	if err != nil {
		config.ErrorStatus("invalid announcement payload", http.StatusBadRequest, w, err)
		return
	}

	announcement := models.Announcement{
		ID:             uuid.NewString(),
		Message:        fields.message,
		StartDate:      formatOptional(fields.startDate),
		ExpirationDate: fields.expirationDate.Format(time.RFC3339),
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := a.ADB.InsertOne(ctx, announcement); err != nil {
		config.ErrorStatus("failed to create announcement", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(announcement)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateAnnouncementHandler replaces the message and date window of an
// existing announcement, preserving its id and created_at
func (a Announcement) UpdateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	announcementID := mux.Vars(r)["announcement_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.validateTeacher(ctx, r); err != nil {
		config.ErrorStatus("invalid teacher credentials", http.StatusUnauthorized, w, err)
		return
	}

	if _, err := a.ADB.FindOne(ctx, bson.M{"_id": announcementID}); err != nil {
		config.ErrorStatus("announcement not found", http.StatusNotFound, w, err)
		return
	}

	var payload models.AnnouncementUpsert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	fields, err := validateUpsert(payload)
	if err != nil {
		config.ErrorStatus("invalid announcement payload", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"message":         fields.message,
		"start_date":      formatOptional(fields.startDate),
		"expiration_date": fields.expirationDate.Format(time.RFC3339),
	}}
	if err := a.ADB.UpdateOne(ctx, bson.M{"_id": announcementID}, update); err != nil {
		config.ErrorStatus("failed to update announcement", http.StatusInternalServerError, w, err)
		return
	}

	updated, err := a.ADB.FindOne(ctx, bson.M{"_id": announcementID})
	if err != nil {
		config.ErrorStatus("failed to fetch updated announcement", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteAnnouncementHandler deletes an announcement by its ID
func (a Announcement) DeleteAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	announcementID := mux.Vars(r)["announcement_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.validateTeacher(ctx, r); err != nil {
		config.ErrorStatus("invalid teacher credentials", http.StatusUnauthorized, w, err)
		return
	}

	deleted, err := a.ADB.DeleteOne(ctx, bson.M{"_id": announcementID})
	if err != nil {
		config.ErrorStatus("failed to delete announcement", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("announcement not found", http.StatusNotFound, w, fmt.Errorf("no announcement matched id %s", announcementID))
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.AnnouncementDeletedResponse{Message: "Announcement deleted"})
}

// optionalString treats an empty stored value as an absent field
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
