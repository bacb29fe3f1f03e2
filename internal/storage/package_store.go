package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PackageStore provides read access to the expedition package collection
// in the document store.
type PackageStore struct {
	collection *mongo.Collection
	client     *mongo.Client
}

// PackageStoreConfig holds document store connection settings.
type PackageStoreConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// NewPackageStore connects to the document store and returns a package store.
func NewPackageStore(ctx context.Context, cfg PackageStoreConfig) (*PackageStore, error) {
	if cfg.Database == "" {
		cfg.Database = "jungloreprod"
	}
	if cfg.Collection == "" {
		cfg.Collection = "packages"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &PackageStore{
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		client:     client,
	}, nil
}

// FindExpeditions returns active packages whose type matches "expedition"
// (case-insensitive), optionally filtered by a location substring against
// region, heading, title, and slug.
func (s *PackageStore) FindExpeditions(ctx context.Context, location string, limit int) ([]Package, error) {
	return s.find(ctx, expeditionFilter(location), limit)
}

func expeditionFilter(location string) bson.M {
	filter := bson.M{
		"status": true,
		"type":   bson.M{"$regex": "expedition", "$options": "i"},
	}

	if location != "" {
		filter["$or"] = bson.A{
			bson.M{"region": bson.M{"$regex": location, "$options": "i"}},
			bson.M{"heading": bson.M{"$regex": location, "$options": "i"}},
			bson.M{"title": bson.M{"$regex": location, "$options": "i"}},
			bson.M{"slug": bson.M{"$regex": location, "$options": "i"}},
		}
	}

	return filter
}

// FindActive returns packages flagged active, regardless of type.
func (s *PackageStore) FindActive(ctx context.Context, limit int) ([]Package, error) {
	return s.find(ctx, bson.M{"status": true}, limit)
}

// GetByID retrieves a single active package by its document ID.
func (s *PackageStore) GetByID(ctx context.Context, id string) (*Package, error) {
	filter := bson.M{"status": true}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter["_id"] = oid
	} else {
		filter["_id"] = id
	}

	var doc bson.M
	err := s.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find one: %w", err)
	}

	pkg := NormalizePackage(doc)
	return &pkg, nil
}

// Count returns the total number of documents in the package collection.
func (s *PackageStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}

// Ping checks document store connectivity.
func (s *PackageStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the document store.
func (s *PackageStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *PackageStore) find(ctx context.Context, filter bson.M, limit int) ([]Package, error) {
	if limit <= 0 {
		limit = 100
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	packages := make([]Package, 0, len(docs))
	for _, doc := range docs {
		packages = append(packages, NormalizePackage(doc))
	}
	return packages, nil
}

// NormalizePackage maps a raw, schema-less package document into a typed
// Package, applying defaults for missing or variant fields. The document
// store is not owned by this service, so every field read is permissive.
func NormalizePackage(doc bson.M) Package {
	pkg := Package{
		ID:          docID(doc),
		Title:       docString(doc, "title"),
		Description: docString(doc, "description"),
		Heading:     docString(doc, "heading"),
		Region:      docString(doc, "region"),
		Location:    docString(doc, "location"),
		Slug:        docString(doc, "slug"),
		Duration:    docString(doc, "duration"),
		Type:        docString(doc, "type"),
		Price:       docFloat(doc, "price"),
		Currency:    docString(doc, "currency"),
		Image:       docString(doc, "image"),
		Status:      docBool(doc, "status"),
	}

	if pkg.Currency == "" {
		pkg.Currency = "INR"
	}

	pkg.AdditionalImages = docStrings(doc, "additional_images")
	pkg.Dates = docStrings(doc, "date")
	pkg.Features = docStringMap(doc, "features")

	return pkg
}

func docID(doc bson.M) string {
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

func docString(doc bson.M, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func docBool(doc bson.M, key string) bool {
	if v, ok := doc[key].(bool); ok {
		return v
	}
	return false
}

func docFloat(doc bson.M, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func docStrings(doc bson.M, key string) []string {
	raw, ok := doc[key].(bson.A)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func docStringMap(doc bson.M, key string) map[string]string {
	raw, ok := doc[key].(bson.M)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
