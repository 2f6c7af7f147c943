package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/events"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SubscriptionIDFormat = "TL:SUBSCRIPTION:%s"

type subscriptionRequest struct {
	Name       string `validate:"required,max=100"`
	Expression string `validate:"required,max=1000"`
}

func AccountRouter(router fiber.Router) {
	router.Post("/notificationtoken", postNotificationToken)

	router.Get("/subscriptions", listSubscriptions)
	router.Post("/subscriptions", postSubscription)
	router.Delete("/subscriptions/:identifier", deleteSubscription)
}

func accountUserID(c *fiber.Ctx) (string, error) {
	userID, _ := c.Locals("account_userid").(string)

	if userID == "" {
		return "", errors.New("No userid set")
	}

	return userID, nil
}

func postNotificationToken(c *fiber.Ctx) error {
	var requestBody struct {
		Token string
	}
	if err := c.BodyParser(&requestBody); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	userID, err := accountUserID(c)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if requestBody.Token == "" {
		return sendError(c, fiber.StatusBadRequest, errors.New("No token set"))
	}

	userPushNotificationTarget := ctdf.UserPushNotificationTarget{
		UserID:                userID,
		PushNotificationToken: requestBody.Token,
		ModificationDateTime:  time.Now(),
	}

	userPushNotificationTargetCollection := database.GetCollection("user_push_notification_target")

	filter := bson.M{"userid": userID}
	update := bson.M{
		"$set":         userPushNotificationTarget,
		"$setOnInsert": bson.M{"creationdatetime": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := userPushNotificationTargetCollection.UpdateOne(context.Background(), filter, update, opts); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func newSubscription(userID string, request *subscriptionRequest) (*ctdf.UserAlertSubscription, error) {
	if err := validate.Struct(request); err != nil {
		return nil, err
	}

	if _, err := events.CompileExpression(request.Expression); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	return &ctdf.UserAlertSubscription{
		PrimaryIdentifier: fmt.Sprintf(SubscriptionIDFormat, uuid.NewString()),
		UserID:            userID,
		Name:              request.Name,
		Expression:        request.Expression,
		CreationDateTime:  time.Now(),
	}, nil
}

func postSubscription(c *fiber.Ctx) error {
	userID, err := accountUserID(c)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	var request subscriptionRequest
	if err := c.BodyParser(&request); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	subscription, err := newSubscription(userID, &request)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	subscriptionsCollection := database.GetCollection("user_alert_subscriptions")
	if _, err := subscriptionsCollection.InsertOne(context.Background(), subscription); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(subscription)
}

func listSubscriptions(c *fiber.Ctx) error {
	userID, err := accountUserID(c)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	subscriptionsCollection := database.GetCollection("user_alert_subscriptions")
	cursor, err := subscriptionsCollection.Find(context.Background(), bson.M{"userid": userID})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	subscriptions := []*ctdf.UserAlertSubscription{}
	if err := cursor.All(context.Background(), &subscriptions); err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	subscriptionsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, subscriptions)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce subscriptions"))
	}

	return c.JSON(subscriptionsReduced)
}

func deleteSubscription(c *fiber.Ctx) error {
	userID, err := accountUserID(c)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	subscriptionsCollection := database.GetCollection("user_alert_subscriptions")
	result, err := subscriptionsCollection.DeleteOne(context.Background(), bson.M{
		"primaryidentifier": c.Params("identifier"),
		"userid":            userID,
	})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if result.DeletedCount == 0 {
		return sendError(c, fiber.StatusNotFound, errors.New("Could not find Subscription matching Identifier"))
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
