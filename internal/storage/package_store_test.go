package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizePackage_FullDocument(t *testing.T) {
	id := primitive.NewObjectID()
	doc := bson.M{
		"_id":         id,
		"title":       "Tadoba National Park",
		"description": "Tiger country.",
		"heading":     "Tadoba",
		"region":      "Maharashtra",
		"location":    "Tadoba National Park",
		"slug":        "tadoba",
		"duration":    "3 Nights 4 Days",
		"type":        "Expedition",
		"price":       int32(24999),
		"currency":    "INR",
		"image":       "https://cdn.junglore.com/tadoba.jpg",
		"status":      true,
		"additional_images": bson.A{
			"https://cdn.junglore.com/1.jpg",
			"https://cdn.junglore.com/2.jpg",
		},
		"date":     bson.A{"2026-10-12", "2026-11-02"},
		"features": bson.M{"guide": "included", "jeeps": int32(2)},
	}

	pkg := NormalizePackage(doc)

	assert.Equal(t, id.Hex(), pkg.ID)
	assert.Equal(t, "Tadoba National Park", pkg.Title)
	assert.Equal(t, "Maharashtra", pkg.Region)
	assert.Equal(t, "Tadoba National Park", pkg.Location)
	assert.Equal(t, float64(24999), pkg.Price)
	assert.True(t, pkg.Status)
	assert.Equal(t, []string{"https://cdn.junglore.com/1.jpg", "https://cdn.junglore.com/2.jpg"}, pkg.AdditionalImages)
	assert.Equal(t, []string{"2026-10-12", "2026-11-02"}, pkg.Dates)
	// Non-string feature values are stringified, not dropped.
	assert.Equal(t, map[string]string{"guide": "included", "jeeps": "2"}, pkg.Features)
}

func TestNormalizePackage_SparseDocument(t *testing.T) {
	pkg := NormalizePackage(bson.M{"_id": "legacy-string-id", "title": "Kanha"})

	assert.Equal(t, "legacy-string-id", pkg.ID)
	assert.Equal(t, "Kanha", pkg.Title)
	assert.Equal(t, "INR", pkg.Currency, "missing currency defaults to INR")
	assert.Zero(t, pkg.Price)
	assert.False(t, pkg.Status)
	assert.Nil(t, pkg.AdditionalImages)
	assert.Nil(t, pkg.Features)
}

func TestNormalizePackage_WrongTypes(t *testing.T) {
	// Fields with unexpected types are dropped rather than panicking.
	pkg := NormalizePackage(bson.M{
		"_id":      int64(42),
		"title":    int32(7),
		"price":    "not a number",
		"status":   "yes",
		"date":     "not an array",
		"features": bson.A{"not", "a", "map"},
	})

	assert.Empty(t, pkg.ID)
	assert.Empty(t, pkg.Title)
	assert.Zero(t, pkg.Price)
	assert.False(t, pkg.Status)
	assert.Nil(t, pkg.Dates)
	assert.Nil(t, pkg.Features)
}

func TestExpeditionFilter_RequiresActiveStatus(t *testing.T) {
	filter := expeditionFilter("")

	assert.Equal(t, true, filter["status"])
	assert.Equal(t, bson.M{"$regex": "expedition", "$options": "i"}, filter["type"])
	assert.NotContains(t, filter, "$or")
}

func TestExpeditionFilter_LocationNarrowsSearch(t *testing.T) {
	filter := expeditionFilter("Maharashtra")

	assert.Equal(t, true, filter["status"])
	or, ok := filter["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 4)
}

func TestNormalizePackage_NumericPriceVariants(t *testing.T) {
	for _, doc := range []bson.M{
		{"price": float64(19999.5)},
		{"price": float32(19999.5)},
	} {
		assert.InDelta(t, 19999.5, NormalizePackage(doc).Price, 0.01)
	}

	assert.Equal(t, float64(19999), NormalizePackage(bson.M{"price": int64(19999)}).Price)
}
