package event

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/pkg/model"
)

func TestService_Create(t *testing.T) {
	insertedID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("create", mock.Anything, mock.AnythingOfType("*model.Event")).
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*model.Event)
			event.ID = insertedID
		}).
		Return(nil)
	repository.
		On("setToken", mock.Anything, insertedID, "host-token").
		Return(nil)
	tokens := &mockTokenIssuer{}
	tokens.
		On("IssueHostToken", insertedID).
		Return("host-token", nil)
	service := NewService(discardLogger(), repository, tokens)

	users := []model.User{{Name: "ann"}, {Name: "bob"}}
	bills := []model.Bill{{Name: "dinner", TotalPaid: 4200}}

	eventID, hostToken, err := service.Create(context.Background(), "trip", users, bills)

	require.NoError(t, err)
	assert.Equal(t, insertedID, eventID)
	assert.Equal(t, "host-token", hostToken)
	repository.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_Create_AssignsEmbeddedIds(t *testing.T) {
	repository := &mockRepository{}
	var inserted *model.Event
	repository.
		On("create", mock.Anything, mock.AnythingOfType("*model.Event")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*model.Event)
			inserted.ID = primitive.NewObjectID()
		}).
		Return(nil)
	repository.
		On("setToken", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
	tokens := &mockTokenIssuer{}
	tokens.
		On("IssueHostToken", mock.Anything).
		Return("host-token", nil)
	service := NewService(discardLogger(), repository, tokens)

	_, _, err := service.Create(context.Background(), "trip", []model.User{{Name: "ann"}}, []model.Bill{{Name: "dinner"}})

	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.Len(t, inserted.UserList, 1)
	assert.False(t, inserted.UserList[0].ID.IsZero())
	require.Len(t, inserted.Bills, 1)
	assert.False(t, inserted.Bills[0].ID.IsZero())
}

func TestService_AddBill(t *testing.T) {
	eventID := primitive.NewObjectID()
	organizerID := primitive.NewObjectID()
	repository := &mockRepository{}
	var pushed model.Bill
	repository.
		On("pushBill", mock.Anything, eventID, mock.AnythingOfType("model.Bill")).
		Run(func(args mock.Arguments) {
			pushed = args.Get(2).(model.Bill)
		}).
		Return(nil)
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	billID, err := service.AddBill(context.Background(), eventID, organizerID, model.Bill{Name: "taxi", TotalPaid: 900})

	require.NoError(t, err)
	assert.False(t, billID.IsZero())
	assert.Equal(t, billID, pushed.ID)
	assert.Equal(t, organizerID, pushed.Organizer)
	repository.AssertExpectations(t)
}

func TestService_AddBill_EventNotFound(t *testing.T) {
	eventID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("pushBill", mock.Anything, eventID, mock.AnythingOfType("model.Bill")).
		Return(errdef.NewNotFound("failed to find event with id %q", eventID.Hex()))
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	_, err := service.AddBill(context.Background(), eventID, primitive.NewObjectID(), model.Bill{Name: "taxi"})

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_AddUser(t *testing.T) {
	eventID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("findRawByID", mock.Anything, eventID).
		Return(bson.Raw{}, nil)
	var pushed model.User
	repository.
		On("pushUser", mock.Anything, eventID, mock.AnythingOfType("model.User")).
		Run(func(args mock.Arguments) {
			pushed = args.Get(2).(model.User)
		}).
		Return(nil)
	tokens := &mockTokenIssuer{}
	tokens.
		On("IssueUserToken", eventID, mock.AnythingOfType("primitive.ObjectID")).
		Return("user-token", nil)
	service := NewService(discardLogger(), repository, tokens)

	userID, userToken, err := service.AddUser(context.Background(), eventID, model.User{Name: "ann"})

	require.NoError(t, err)
	assert.False(t, userID.IsZero())
	assert.Equal(t, userID, pushed.ID)
	assert.Equal(t, "user-token", userToken)
	repository.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_AddUser_EventNotFound(t *testing.T) {
	eventID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("findRawByID", mock.Anything, eventID).
		Return(bson.Raw(nil), errdef.NewNotFound("failed to find event with id %q", eventID.Hex()))
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	_, _, err := service.AddUser(context.Background(), eventID, model.User{Name: "ann"})

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
	repository.AssertNotCalled(t, "pushUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateUserField(t *testing.T) {
	eventID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("setUserField", mock.Anything, eventID, userID, "name", "X").
		Return(nil)
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	err := service.UpdateUserField(context.Background(), eventID, userID, "name", "X")

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_UpdateUserField_UnknownField(t *testing.T) {
	repository := &mockRepository{}
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	for _, field := range []string{"debt", "token", "user_list.$[elem].name", "_id", ""} {
		err := service.UpdateUserField(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), field, "X")

		require.Error(t, err, "field %q", field)
		assert.True(t, errdef.IsBadRequest(err))
	}
	repository.AssertNotCalled(t, "setUserField", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_MarkBillPaid(t *testing.T) {
	eventID := primitive.NewObjectID()
	billID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("setGuestPaidStatus", mock.Anything, eventID, billID, userID, model.NotPaid, model.PartiallyPaid).
		Return(nil)
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	err := service.MarkBillPaid(context.Background(), eventID, billID, userID)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_VerifyBillPayment(t *testing.T) {
	eventID := primitive.NewObjectID()
	billID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	repository := &mockRepository{}
	repository.
		On("setGuestPaidStatus", mock.Anything, eventID, billID, userID, model.PartiallyPaid, model.FullyPaid).
		Return(nil)
	service := NewService(discardLogger(), repository, &mockTokenIssuer{})

	err := service.VerifyBillPayment(context.Background(), eventID, billID, userID)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockRepository struct{ mock.Mock }

func (m *mockRepository) create(ctx context.Context, event *model.Event) error {
	called := m.Called(ctx, event)
	return called.Error(0)
}

func (m *mockRepository) findRawByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	called := m.Called(ctx, id)
	return called.Get(0).(bson.Raw), called.Error(1)
}

func (m *mockRepository) setToken(ctx context.Context, id primitive.ObjectID, token string) error {
	called := m.Called(ctx, id, token)
	return called.Error(0)
}

func (m *mockRepository) pushBill(ctx context.Context, eventID primitive.ObjectID, bill model.Bill) error {
	called := m.Called(ctx, eventID, bill)
	return called.Error(0)
}

func (m *mockRepository) pushUser(ctx context.Context, eventID primitive.ObjectID, user model.User) error {
	called := m.Called(ctx, eventID, user)
	return called.Error(0)
}

func (m *mockRepository) setUserField(ctx context.Context, eventID, userID primitive.ObjectID, field, value string) error {
	called := m.Called(ctx, eventID, userID, field, value)
	return called.Error(0)
}

func (m *mockRepository) setGuestPaidStatus(ctx context.Context, eventID, billID, userID primitive.ObjectID, from, to model.PaidStatus) error {
	called := m.Called(ctx, eventID, billID, userID, from, to)
	return called.Error(0)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) IssueHostToken(eventID primitive.ObjectID) (string, error) {
	called := m.Called(eventID)
	return called.String(0), called.Error(1)
}

func (m *mockTokenIssuer) IssueUserToken(eventID, userID primitive.ObjectID) (string, error) {
	called := m.Called(eventID, userID)
	return called.String(0), called.Error(1)
}
