package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runTimeout = 2 * time.Second

var _ i.RunRepo = &RunRepo{}

// runDocument is the BSON form of a solved maze.
type runDocument struct {
	ID       uuid.UUID       `bson:"_id"`
	PlayerID uuid.UUID       `bson:"playerId"`
	Dims     game.Dimensions `bson:"dims"`
	Seed     int64           `bson:"seed"`
	Moves    int             `bson:"moves"`
	SolvedAt time.Time       `bson:"solvedAt"`
}

// RunRepo persists solved mazes.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	return &RunRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index backing ByPlayer.
func (r *RunRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "solvedAt", Value: -1}},
	})
	return err
}

// Add implements i.RunRepo.
func (r *RunRepo) Add(ctx context.Context, playerID uuid.UUID, run game.SolvedRun) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, newRunDocument(playerID, run))
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByPlayer implements i.RunRepo.
func (r *RunRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.SolvedRun, error) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "solvedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	var docs []runDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	runs := make([]game.SolvedRun, 0, len(docs))
	for _, d := range docs {
		runs = append(runs, d.toSolvedRun())
	}
	return runs, nil
}

func newRunDocument(playerID uuid.UUID, run game.SolvedRun) runDocument {
	return runDocument{
		ID:       uuid.New(),
		PlayerID: playerID,
		Dims:     run.Dims,
		Seed:     run.Seed,
		Moves:    run.Moves,
		SolvedAt: run.SolvedAt,
	}
}

func (d runDocument) toSolvedRun() game.SolvedRun {
	return game.SolvedRun{
		Dims:     d.Dims,
		Seed:     d.Seed,
		Moves:    d.Moves,
		SolvedAt: d.SolvedAt,
	}
}
