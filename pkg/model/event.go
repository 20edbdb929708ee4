package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the single document kind held by the store. Users and bills are
// embedded, in insertion order. Token is written in a second update right
// after the insert, so a freshly inserted event is briefly tokenless.
type Event struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	UserList []User             `bson:"user_list" json:"user_list"`
	Bills    []Bill             `bson:"bills" json:"bills"`
	Token    string             `bson:"token,omitempty" json:"token,omitempty"`
}

// User is a participant embedded in exactly one event. Guest entries on
// bills reference it by id only.
type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Bank        string             `bson:"bank,omitempty" json:"bank,omitempty"`
}

// Bill is owned by exactly one event. Bills are appended, never removed.
// Organizer references a user in the same event's user_list.
type Bill struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Organizer primitive.ObjectID `bson:"org,omitempty" json:"org,omitempty"`
	TotalPaid int                `bson:"total_paid" json:"total_paid"`
	Guests    []Guest            `bson:"guys" json:"guys"`
}

// Guest is a per-participant debt entry on a bill. ID references a user in
// the event's user_list. Debt is in minor currency units. Whether guest
// debts sum to the bill total is advisory and not enforced.
type Guest struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Debt       int                `bson:"debt" json:"debt"`
	PaidStatus PaidStatus         `bson:"paid_status" json:"paid_status"`
}
