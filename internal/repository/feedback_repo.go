package repository

import (
	"context"
	"fmt"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// feedbackCollection is the part of the feedback collection the repo needs.
type feedbackCollection interface {
	insertOne(ctx context.Context, feedback *models.Feedback) error
	findNewestFirst(ctx context.Context) ([]models.Feedback, error)
	deleteByID(ctx context.Context, id string) (int64, error)
	ping(ctx context.Context) error
	ensureIndexes(ctx context.Context) error
}

// MongoFeedbackRepo stores feedback as documents keyed by the same UUID the
// relational backend uses, so ids look identical whichever store is active.
type MongoFeedbackRepo struct {
	collection feedbackCollection
}

var _ FeedbackRepository = (*MongoFeedbackRepo)(nil)

func NewMongoFeedbackRepo(db *mongo.Database) *MongoFeedbackRepo {
	return &MongoFeedbackRepo{
		collection: &mongoCollection{coll: db.Collection("feedback")},
	}
}

func (r *MongoFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	stamp(feedback)
	if err := r.collection.insertOne(ctx, feedback); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *MongoFeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := r.collection.findNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	if items == nil {
		items = []models.Feedback{}
	}
	return items, nil
}

func (r *MongoFeedbackRepo) Delete(ctx context.Context, id string) error {
	deleted, err := r.collection.deleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFeedbackRepo) Ping(ctx context.Context) error {
	return r.collection.ping(ctx)
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *MongoFeedbackRepo) EnsureIndexes(ctx context.Context) error {
	return r.collection.ensureIndexes(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) insertOne(ctx context.Context, feedback *models.Feedback) error {
	_, err := c.coll.InsertOne(ctx, feedback)
	return err
}

func (c *mongoCollection) findNewestFirst(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return items, nil
}

func (c *mongoCollection) deleteByID(ctx context.Context, id string) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection) ping(ctx context.Context) error {
	return c.coll.Database().Client().Ping(ctx, nil)
}

func (c *mongoCollection) ensureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
