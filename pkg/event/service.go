package event

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/pkg/model"
)

func NewService(logger *slog.Logger, repository repository, tokens tokenIssuer) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		tokens:     tokens,
	}
}

type repository interface {
	create(ctx context.Context, event *model.Event) error
	findRawByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error)
	setToken(ctx context.Context, id primitive.ObjectID, token string) error
	pushBill(ctx context.Context, eventID primitive.ObjectID, bill model.Bill) error
	pushUser(ctx context.Context, eventID primitive.ObjectID, user model.User) error
	setUserField(ctx context.Context, eventID, userID primitive.ObjectID, field, value string) error
	setGuestPaidStatus(ctx context.Context, eventID, billID, userID primitive.ObjectID, from, to model.PaidStatus) error
}

type tokenIssuer interface {
	IssueHostToken(eventID primitive.ObjectID) (string, error)
	IssueUserToken(eventID, userID primitive.ObjectID) (string, error)
}

type Service struct {
	logger     *slog.Logger
	repository repository
	tokens     tokenIssuer
}

// Create inserts the event and mints its host token. Every embedded user
// and bill gets a fresh id before the insert so each one is addressable
// from the moment the document exists. The token lands on the document in
// a second write; until then the event exists without one.
func (s Service) Create(ctx context.Context, name string, users []model.User, bills []model.Bill) (primitive.ObjectID, string, error) {
	for i := range users {
		users[i].ID = primitive.NewObjectID()
	}
	for i := range bills {
		bills[i].ID = primitive.NewObjectID()
	}

	event := &model.Event{
		Name:     name,
		UserList: users,
		Bills:    bills,
	}
	if err := s.repository.create(ctx, event); err != nil {
		return primitive.NilObjectID, "", err
	}

	hostToken, err := s.tokens.IssueHostToken(event.ID)
	if err != nil {
		return primitive.NilObjectID, "", err
	}

	if err := s.repository.setToken(ctx, event.ID, hostToken); err != nil {
		return primitive.NilObjectID, "", err
	}

	s.logger.InfoContext(ctx, "Event created", "eventId", event.ID.Hex(), "users", len(users), "bills", len(bills))

	return event.ID, hostToken, nil
}

// Get returns the raw event document. The caller's verified token is the
// entire authorization.
func (s Service) Get(ctx context.Context, eventID primitive.ObjectID) (bson.Raw, error) {
	return s.repository.findRawByID(ctx, eventID)
}

// AddBill appends the bill with a fresh id and the caller stamped as
// organizer. The push is a single atomic document mutation.
func (s Service) AddBill(ctx context.Context, eventID, organizerID primitive.ObjectID, bill model.Bill) (primitive.ObjectID, error) {
	bill.ID = primitive.NewObjectID()
	bill.Organizer = organizerID

	if err := s.repository.pushBill(ctx, eventID, bill); err != nil {
		return primitive.NilObjectID, err
	}

	s.logger.InfoContext(ctx, "Bill added", "billId", bill.ID.Hex())

	return bill.ID, nil
}

// AddUser appends the user and mints their personal token. The existence
// check and the push are separate store operations; an event deleted in
// between surfaces as a failed push.
func (s Service) AddUser(ctx context.Context, eventID primitive.ObjectID, user model.User) (primitive.ObjectID, string, error) {
	if _, err := s.repository.findRawByID(ctx, eventID); err != nil {
		return primitive.NilObjectID, "", err
	}

	user.ID = primitive.NewObjectID()
	if err := s.repository.pushUser(ctx, eventID, user); err != nil {
		return primitive.NilObjectID, "", err
	}

	userToken, err := s.tokens.IssueUserToken(eventID, user.ID)
	if err != nil {
		return primitive.NilObjectID, "", err
	}

	s.logger.InfoContext(ctx, "User added", "userId", user.ID.Hex())

	return user.ID, userToken, nil
}

// Updatable user fields. Anything else is rejected before it reaches the
// store.
const (
	FieldName        = "name"
	FieldPhoneNumber = "phone_number"
	FieldBank        = "bank"
)

// UpdateUserField patches one field of one embedded user. The field name
// is dispatched against a closed set, never forwarded verbatim into an
// update path.
func (s Service) UpdateUserField(ctx context.Context, eventID, userID primitive.ObjectID, field, value string) error {
	switch field {
	case FieldName, FieldPhoneNumber, FieldBank:
	default:
		return errdef.NewBadRequest("field %q is not updatable", field)
	}

	return s.repository.setUserField(ctx, eventID, userID, field, value)
}

// MarkBillPaid records the calling user's claim that they settled their
// share: not_paid becomes partially_paid, pending host verification.
func (s Service) MarkBillPaid(ctx context.Context, eventID, billID, userID primitive.ObjectID) error {
	return s.repository.setGuestPaidStatus(ctx, eventID, billID, userID, model.NotPaid, model.PartiallyPaid)
}

// VerifyBillPayment is the host-only second half of the payment flow:
// partially_paid becomes fully_paid. Authorization is the handler's job;
// the service only performs the transition.
func (s Service) VerifyBillPayment(ctx context.Context, eventID, billID, userID primitive.ObjectID) error {
	return s.repository.setGuestPaidStatus(ctx, eventID, billID, userID, model.PartiallyPaid, model.FullyPaid)
}
