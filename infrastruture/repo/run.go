package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRunNotFound is returned when no run record matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

// RunRepo handles the persistence of solver-run records.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run record.
func (r *RunRepo) Save(run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{
		"$set": bson.M{
			"ownerId":    run.OwnerID,
			"solver":     run.Solver,
			"mazeWidth":  run.MazeWidth,
			"mazeHeight": run.MazeHeight,
			"status":     run.Status,
			"steps":      run.Steps,
			"path":       run.Path,
			"createdAt":  run.CreatedAt,
			"finishedAt": run.FinishedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a run by its ID.
func (r *RunRepo) ByID(id uuid.UUID) (*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run dmn.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRunNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
