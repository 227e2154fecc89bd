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

const eventCollection = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventCollection)}
}

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"event_title"`
	Date        string             `bson:"event_date"`
	Time        string             `bson:"time,omitempty"`
	Description string             `bson:"description,omitempty"`
	Images      []string           `bson:"images"`
	Videos      []string           `bson:"videos"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Date:        d.Date,
		Time:        d.Time,
		Description: d.Description,
		Images:      d.Images,
		Videos:      d.Videos,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	now := time.Now().UTC()
	doc := eventDoc{
		Title:       event.Title,
		Date:        event.Date,
		Time:        event.Time,
		Description: event.Description,
		Images:      event.Images,
		Videos:      event.Videos,
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	var doc eventDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.Event
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	return events, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	update := bson.M{"$set": bson.M{
		"event_title": event.Title,
		"event_date":  event.Date,
		"time":        event.Time,
		"description": event.Description,
		"images":      event.Images,
		"videos":      event.Videos,
		"updated_at":  time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return r.FindByID(ctx, event.ID)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

var _ ports.EventRepository = (*EventRepository)(nil)
