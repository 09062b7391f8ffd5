package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"careassess/internal/model"
)

// AssessmentRepo handles MongoDB operations for assessment records
type AssessmentRepo interface {
	Create(ctx context.Context, record *model.AssessmentRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.AssessmentRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error)
	// FindEditableByEpisode returns the one editable (DRAFT/REJECTED)
	// record for a patient/episode pair, or nil when none exists
	FindEditableByEpisode(ctx context.Context, patientID, episodeID string) (*model.AssessmentRecord, error)
	Update(ctx context.Context, record *model.AssessmentRecord) error
	// SaveAnswers persists an answer snapshot and stamps lastAutosavedAt
	// when the write came from the autosave path
	SaveAnswers(ctx context.Context, id string, answers model.AssessmentAnswers, autosaved bool) error
	Delete(ctx context.Context, id string) error
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, record *model.AssessmentRecord) (string, error) {
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	record.ID = oid.Hex()
	return record.ID, nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var record model.AssessmentRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

func (r *assessmentRepo) ListByPatient(ctx context.Context, patientID string) ([]*model.AssessmentRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *assessmentRepo) FindEditableByEpisode(ctx context.Context, patientID, episodeID string) (*model.AssessmentRecord, error) {
	filter := bson.M{
		"patientId": patientID,
		"episodeId": episodeID,
		"status":    bson.M{"$in": []model.AssessmentStatus{model.StatusDraft, model.StatusRejected}},
	}

	var record model.AssessmentRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *assessmentRepo) Update(ctx context.Context, record *model.AssessmentRecord) error {
	oid, err := primitive.ObjectIDFromHex(record.ID)
	if err != nil {
		return err
	}

	record.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, record)
	return err
}

func (r *assessmentRepo) SaveAnswers(ctx context.Context, id string, answers model.AssessmentAnswers, autosaved bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	now := time.Now()
	set := bson.M{
		"answers":   answers,
		"updatedAt": now,
	}
	if autosaved {
		set["lastAutosavedAt"] = now
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return err
}

func (r *assessmentRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
