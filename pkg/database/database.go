package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "transitline"

func Connect() error {
	return ConnectMongoDB()
}

func ConnectMongoDB() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["TRANSITLINE_MONGODB_CONNECTION"] != "" {
		connectionString = env["TRANSITLINE_MONGODB_CONNECTION"]
	}

	if env["TRANSITLINE_MONGODB_DATABASE"] != "" {
		dbName = env["TRANSITLINE_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute

	err = backoff.Retry(func() error {
		err := client.Ping(context.Background(), nil)
		if err != nil {
			log.Warn().Err(err).Msg("MongoDB not reachable yet")
		}
		return err
	}, retryPolicy)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	runCommands()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

// Requires
// use admin
// db.runCommand( {
//    setClusterParameter:
//       { changeStreamOptions: { preAndPostImages: { expireAfterSeconds: 15 } } }
// } )

func runCommands() {
	for _, collection := range []string{"incidents", "service_alerts"} {
		var result bson.M
		err := MongoGlobalInstance.Database.RunCommand(context.Background(), bson.D{
			{Key: "collMod", Value: collection},
			{Key: "changeStreamPreAndPostImages", Value: bson.M{"enabled": true}},
		}).Decode(&result)

		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Run commands mongodb")
		}
	}
}
