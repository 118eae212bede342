// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/dberr"
)

const collectionName = "videogames"

// sortKeys maps the public sort field names to their document paths.
// List-valued fields sort by their nested scalar per MongoDB's native array
// comparison.
var sortKeys = map[string]string{
	FieldTitle:      "title",
	FieldDevelopers: "developers.developer",
	FieldPlatforms:  "platforms.platform",
	FieldGenres:     "genres.genre",
	FieldYear:       "year",
}

// MongoRepository is the MongoDB-backed [Repository].
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the catalog indexes at startup. The operation is
// idempotent; existing indexes are left untouched.
func (repository *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "year", Value: 1}}},
	})
	return dberr.Wrap(err, "ensure_indexes")
}

func (repository *MongoRepository) List(ctx context.Context, sort Sort) ([]*Videogame, error) {
	direction := 1
	if sort.Descending {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortKey(sort.Field), Value: direction}})

	cursor, err := repository.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, dberr.Wrap(err, "list_videogames")
	}

	games := []*Videogame{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, dberr.Wrap(err, "decode_videogames")
	}
	return games, nil
}

func (repository *MongoRepository) Search(ctx context.Context, filter SearchFilter) ([]*Videogame, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := repository.collection.Find(ctx, buildSearchQuery(filter), opts)
	if err != nil {
		return nil, dberr.Wrap(err, "search_videogames")
	}

	games := []*Videogame{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, dberr.Wrap(err, "decode_videogames")
	}
	return games, nil
}

func (repository *MongoRepository) Get(ctx context.Context, id string) (*Videogame, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot reference any record.
		return nil, apperr.NotFound("Videogame")
	}

	game := &Videogame{}
	err = repository.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Videogame")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_videogame")
	}
	return game, nil
}

func (repository *MongoRepository) Create(ctx context.Context, game *Videogame) error {
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now
	game.Version = 1

	if game.Thumbnails == nil {
		game.Thumbnails = []Thumbnail{}
	}

	result, err := repository.collection.InsertOne(ctx, game)
	if err != nil {
		return dberr.Wrap(err, "create_videogame")
	}

	game.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (repository *MongoRepository) Update(ctx context.Context, id string, expectedVersion *int64, patch Patch) (*Videogame, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("Videogame")
	}

	filter := bson.M{"_id": objectID}
	if expectedVersion != nil {
		filter["version"] = *expectedVersion
	}

	updated := &Videogame{}
	err = repository.collection.FindOneAndUpdate(
		ctx,
		filter,
		buildPatchUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(updated)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.missOrConflict(ctx, objectID, expectedVersion)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "update_videogame")
	}
	return updated, nil
}

func (repository *MongoRepository) Delete(ctx context.Context, id string, expectedVersion *int64) (*Videogame, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("Videogame")
	}

	filter := bson.M{"_id": objectID}
	if expectedVersion != nil {
		filter["version"] = *expectedVersion
	}

	deleted := &Videogame{}
	err = repository.collection.FindOneAndDelete(ctx, filter).Decode(deleted)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.missOrConflict(ctx, objectID, expectedVersion)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "delete_videogame")
	}
	return deleted, nil
}

// missOrConflict classifies a no-match mutation: a stale If-Match version on
// an existing record is a CONFLICT; otherwise the record is simply gone.
func (repository *MongoRepository) missOrConflict(ctx context.Context, objectID bson.ObjectID, expectedVersion *int64) error {
	if expectedVersion != nil {
		count, err := repository.collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err == nil && count > 0 {
			return apperr.Conflict("Videogame was modified by another request")
		}
	}
	return apperr.NotFound("Videogame")
}

// # Query Construction

// sortKey resolves a public sort field to its document path. The service
// validates the field against the closed set first, so an unknown field here
// falls back to title rather than failing.
func sortKey(field string) string {
	if key, ok := sortKeys[field]; ok {
		return key
	}
	return "title"
}

// buildSearchQuery assembles the MongoDB filter for a validated search:
// title (AND) combined with an OR-group over developer/platform/genre/year.
// User input is regex-quoted so it always matches literally.
func buildSearchQuery(filter SearchFilter) bson.M {
	query := bson.M{}

	if filter.Title != "" {
		query["title"] = substringMatch(filter.Title)
	}

	var orGroup []bson.M

	if filter.Developer != "" {
		orGroup = append(orGroup, bson.M{"developers.developer": substringMatch(filter.Developer)})
	}
	if filter.Platform != "" {
		orGroup = append(orGroup, bson.M{"platforms.platform": substringMatch(filter.Platform)})
	}
	if filter.Genre != "" {
		orGroup = append(orGroup, bson.M{"genres.genre": substringMatch(filter.Genre)})
	}
	if filter.Year != nil {
		orGroup = append(orGroup, bson.M{"year": *filter.Year})
	}

	if len(orGroup) > 0 {
		query["$or"] = orGroup
	}

	return query
}

// substringMatch is a case-insensitive literal substring predicate.
func substringMatch(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// buildPatchUpdate translates a [Patch] into a MongoDB update document,
// bumping updatedAt and the optimistic-concurrency version on every write.
func buildPatchUpdate(patch Patch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Year != nil {
		set["year"] = *patch.Year
	}
	if patch.Developers != nil {
		set["developers"] = patch.Developers
	}
	if patch.Platforms != nil {
		set["platforms"] = patch.Platforms
	}
	if patch.Genres != nil {
		set["genres"] = patch.Genres
	}
	if patch.Covers != nil {
		set["covers"] = *patch.Covers
	}
	if patch.Thumbnails != nil {
		set["thumbnails"] = *patch.Thumbnails
	}

	return bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
}
