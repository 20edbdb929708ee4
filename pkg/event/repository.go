package event

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(collection *mongo.Collection) *mongoRepository {
	return &mongoRepository{collection}
}

type mongoRepository struct {
	collection *mongo.Collection
}

func (r mongoRepository) create(ctx context.Context, event *model.Event) error {
	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to insert event: %v", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	event.ID = id

	return nil
}

func (r mongoRepository) findRawByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	raw, err := r.collection.FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("failed to find event with id %q", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event with id %q: %v", id.Hex(), err)
	}
	return raw, nil
}

func (r mongoRepository) setToken(ctx context.Context, id primitive.ObjectID, token string) error {
	result, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"token": token}})
	if err != nil {
		return fmt.Errorf("failed to store token on event %q: %v", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return errdef.NewNotFound("failed to find event with id %q", id.Hex())
	}
	return nil
}

// pushBill appends atomically. Matching zero documents is the only way a
// push fails without a driver error.
func (r mongoRepository) pushBill(ctx context.Context, eventID primitive.ObjectID, bill model.Bill) error {
	result, err := r.collection.UpdateByID(ctx, eventID, bson.M{"$push": bson.M{"bills": bill}})
	if err != nil {
		return fmt.Errorf("failed to push bill onto event %q: %v", eventID.Hex(), err)
	}
	if result.ModifiedCount == 0 {
		return errdef.NewNotFound("failed to find event with id %q", eventID.Hex())
	}
	return nil
}

func (r mongoRepository) pushUser(ctx context.Context, eventID primitive.ObjectID, user model.User) error {
	result, err := r.collection.UpdateByID(ctx, eventID, bson.M{"$push": bson.M{"user_list": user}})
	if err != nil {
		return fmt.Errorf("failed to push user onto event %q: %v", eventID.Hex(), err)
	}
	if result.ModifiedCount == 0 {
		return errdef.NewBadRequest("failed to add user to event %q", eventID.Hex())
	}
	return nil
}

// setUserField updates one field of one embedded user, selected twice by
// the same id: once to match the document, once as the array filter that
// picks the element the $set applies to.
func (r mongoRepository) setUserField(ctx context.Context, eventID, userID primitive.ObjectID, field, value string) error {
	filter := bson.M{"_id": eventID, "user_list._id": userID}
	update := bson.M{"$set": bson.M{"user_list.$[elem]." + field: value}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem._id": userID}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update user %q on event %q: %v", userID.Hex(), eventID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return errdef.NewNotFound("failed to find user %q on event %q", userID.Hex(), eventID.Hex())
	}
	if result.ModifiedCount == 0 {
		// matched but unchanged, the field already held this value
		return errdef.NewBadRequest("user %q already has %s set to this value", userID.Hex(), field)
	}
	return nil
}

// setGuestPaidStatus moves one guest entry on one bill from one status to
// the next. The from status is part of the guest array filter, so an
// entry in any other status matches the document but modifies nothing.
func (r mongoRepository) setGuestPaidStatus(ctx context.Context, eventID, billID, userID primitive.ObjectID, from, to model.PaidStatus) error {
	filter := bson.M{"_id": eventID, "bills._id": billID}
	update := bson.M{"$set": bson.M{"bills.$[bill].guys.$[guy].paid_status": to}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"bill._id": billID},
			bson.M{"guy._id": userID, "guy.paid_status": from},
		},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update paid status of user %q on bill %q: %v", userID.Hex(), billID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return errdef.NewNotFound("failed to find bill %q on event %q", billID.Hex(), eventID.Hex())
	}
	if result.ModifiedCount == 0 {
		return errdef.NewConflict("user %q on bill %q is not in status %s", userID.Hex(), billID.Hex(), from)
	}
	return nil
}
