package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createLinesIndexes()
	createVehiclesIndexes()
	createIncidentsIndexes()
	createUserIndexes()
	createChatIndexes()
}

func createLinesIndexes() {
	// Lines
	linesCollection := GetCollection("lines")
	linesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "stops.location", Value: "2dsphere"}},
		},
	}

	_, err := linesCollection.Indexes().CreateMany(context.Background(), linesIndex, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createVehiclesIndexes() {
	// Vehicles
	vehiclesCollection := GetCollection("vehicles")
	_, err := vehiclesCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "lineref", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createIncidentsIndexes() {
	// Incidents
	incidentsCollection := GetCollection("incidents")
	_, err := incidentsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "lineref", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// ServiceAlerts
	serviceAlertsCollection := GetCollection("service_alerts")
	_, err = serviceAlertsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "matchedidentifiers", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "validuntil", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // Expire as soon as the alert stops being valid
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createUserIndexes() {
	pushTargetsCollection := GetCollection("user_push_notification_target")
	_, err := pushTargetsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	subscriptionsCollection := GetCollection("user_alert_subscriptions")
	_, err = subscriptionsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createChatIndexes() {
	chatCollection := GetCollection("chat_messages")
	_, err := chatCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room", Value: 1},
				{Key: "creationdatetime", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "creationdatetime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600), // Expire after 7 days
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
