package ctdf

import "time"

type UserPushNotificationTarget struct {
	UserID                string
	PushNotificationToken string

	CreationDateTime     time.Time
	ModificationDateTime time.Time
}

// UserAlertSubscription holds an expression evaluated against every new service alert
type UserAlertSubscription struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`
	UserID            string `groups:"internal"`

	Name       string `groups:"basic"`
	Expression string `groups:"basic"`

	CreationDateTime time.Time `groups:"basic"`
}
