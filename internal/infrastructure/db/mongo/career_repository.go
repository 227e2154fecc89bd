package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const careerCollection = "career_applications"

type CareerRepository struct {
	coll *mongo.Collection
}

func NewCareerRepository(db *mongo.Database) *CareerRepository {
	return &CareerRepository{coll: db.Collection(careerCollection)}
}

type careerDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Resume      string             `bson:"resume"`
	CoverLetter string             `bson:"cover_letter,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (d *careerDoc) toDomain() *domain.CareerApplication {
	return &domain.CareerApplication{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		Resume:      d.Resume,
		CoverLetter: d.CoverLetter,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
}

func (r *CareerRepository) Create(ctx context.Context, app *domain.CareerApplication) (*domain.CareerApplication, error) {
	doc := careerDoc{
		Name:        app.Name,
		Email:       app.Email,
		Resume:      app.Resume,
		CoverLetter: app.CoverLetter,
		CreatedAt:   time.Now().UTC().Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CareerRepository) FindByID(ctx context.Context, id string) (*domain.CareerApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}
	var doc careerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CareerRepository) FindAll(ctx context.Context) ([]*domain.CareerApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []*domain.CareerApplication
	for cur.Next(ctx) {
		var doc careerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		apps = append(apps, doc.toDomain())
	}
	return apps, cur.Err()
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrApplicationNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

var _ ports.CareerRepository = (*CareerRepository)(nil)
