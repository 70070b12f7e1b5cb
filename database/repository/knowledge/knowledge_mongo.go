package knowledge

import (
	"context"
	"fmt"
	"time"

	"glambook/database"
	"glambook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "agent_knowledge"

// MongoKnowledgeRepo is the Mongo-backed knowledge repository.
type MongoKnowledgeRepo struct {
	coll *mongo.Collection
}

// NewMongoKnowledgeRepo uses the global client's configured database.
func NewMongoKnowledgeRepo() *MongoKnowledgeRepo {
	return &MongoKnowledgeRepo{coll: database.Collection(collectionName)}
}

func (r *MongoKnowledgeRepo) ActiveContent(ctx context.Context, language string) ([]models.KnowledgeEntry, error) {
	filter := bson.M{"is_active": true}
	if language != "" {
		// Entries without a language apply to every language.
		filter["$or"] = bson.A{
			bson.M{"language": language},
			bson.M{"language": ""},
			bson.M{"language": bson.M{"$exists": false}},
		}
	}
	return r.find(ctx, filter)
}

func (r *MongoKnowledgeRepo) List(ctx context.Context, language string) ([]models.KnowledgeEntry, error) {
	filter := bson.M{}
	if language != "" {
		filter["language"] = language
	}
	return r.find(ctx, filter)
}

func (r *MongoKnowledgeRepo) find(ctx context.Context, filter bson.M) ([]models.KnowledgeEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.KnowledgeEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode knowledge: %w", err)
	}
	return out, nil
}

func (r *MongoKnowledgeRepo) Create(ctx context.Context, entry *models.KnowledgeEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return "", fmt.Errorf("create knowledge entry: %w", err)
	}
	return entry.ID, nil
}

func (r *MongoKnowledgeRepo) Update(ctx context.Context, id string, entry *models.KnowledgeEntry) error {
	update := bson.M{"$set": bson.M{
		"category":   entry.Category,
		"content":    entry.Content,
		"language":   entry.Language,
		"is_active":  entry.IsActive,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update knowledge entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoKnowledgeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete knowledge entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
