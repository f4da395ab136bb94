package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusworks/project-portal/internal/core/domain"
)

const projectsCollection = "project_ideas"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type featureDoc struct {
	Name      string `bson:"name"`
	Completed bool   `bson:"completed"`
}

type projectDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	StudentID       primitive.ObjectID `bson:"student"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Features        []featureDoc       `bson:"features"`
	Approved        bool               `bson:"approved"`
	FinalSubmitted  bool               `bson:"final_submitted"`
	FacultyFeedback string             `bson:"faculty_feedback"`
	Marks           int                `bson:"marks"`
	FinalLink       string             `bson:"final_link"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *projectDoc) toDomain() *domain.ProjectIdea {
	features := make([]domain.Feature, len(d.Features))
	for i, f := range d.Features {
		features[i] = domain.Feature{Name: f.Name, Completed: f.Completed}
	}
	return &domain.ProjectIdea{
		ID:              d.ID.Hex(),
		StudentID:       d.StudentID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Features:        features,
		Approved:        d.Approved,
		FinalSubmitted:  d.FinalSubmitted,
		FacultyFeedback: d.FacultyFeedback,
		Marks:           d.Marks,
		FinalLink:       d.FinalLink,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toFeatureDocs(features []domain.Feature) []featureDoc {
	docs := make([]featureDoc, len(features))
	for i, f := range features {
		docs[i] = featureDoc{Name: f.Name, Completed: f.Completed}
	}
	return docs
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.ProjectIdea) (*domain.ProjectIdea, error) {
	studentOID, err := primitive.ObjectIDFromHex(p.StudentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		StudentID:       studentOID,
		Title:           p.Title,
		Description:     p.Description,
		Features:        toFeatureDocs(p.Features),
		Approved:        p.Approved,
		FinalSubmitted:  p.FinalSubmitted,
		FacultyFeedback: p.FacultyFeedback,
		Marks:           p.Marks,
		FinalLink:       p.FinalLink,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.ProjectIdea, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindApprovedByStudent(ctx context.Context, studentID string) (*domain.ProjectIdea, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	err = r.coll.FindOne(ctx, bson.M{"student": oid, "approved": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find approved project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.ProjectIdea, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"student": oid})
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]*domain.ProjectIdea, error) {
	return r.list(ctx, bson.M{})
}

func (r *ProjectRepository) list(ctx context.Context, filter bson.M) ([]*domain.ProjectIdea, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []*domain.ProjectIdea
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	return projects, cursor.Err()
}

// Update replaces the mutable fields of the stored document. The owning
// student reference is never part of the update.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.ProjectIdea) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":            p.Title,
		"description":      p.Description,
		"features":         toFeatureDocs(p.Features),
		"approved":         p.Approved,
		"final_submitted":  p.FinalSubmitted,
		"faculty_feedback": p.FacultyFeedback,
		"marks":            p.Marks,
		"final_link":       p.FinalLink,
		"updated_at":       p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// SetFeatureCompleted updates a single feature positionally so concurrent
// edits to sibling fields are not clobbered.
func (r *ProjectRepository) SetFeatureCompleted(ctx context.Context, id string, index int, completed bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		fmt.Sprintf("features.%d.completed", index): completed,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set feature completed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the ownership and approval
// lookups.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "student", Value: 1}}},
		{Keys: bson.D{{Key: "student", Value: 1}, {Key: "approved", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
