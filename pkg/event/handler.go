package event

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/internal/handler"
	"github.com/evenup-app/evenup/pkg/model"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(ctx context.Context, name string, users []model.User, bills []model.Bill) (primitive.ObjectID, string, error)
	Get(ctx context.Context, eventID primitive.ObjectID) (bson.Raw, error)
	AddBill(ctx context.Context, eventID, organizerID primitive.ObjectID, bill model.Bill) (primitive.ObjectID, error)
	AddUser(ctx context.Context, eventID primitive.ObjectID, user model.User) (primitive.ObjectID, string, error)
	UpdateUserField(ctx context.Context, eventID, userID primitive.ObjectID, field, value string) error
	MarkBillPaid(ctx context.Context, eventID, billID, userID primitive.ObjectID) error
	VerifyBillPayment(ctx context.Context, eventID, billID, userID primitive.ObjectID) error
}

type UserRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Bank        string `json:"bank"`
}

type GuestRequest struct {
	ID         string `json:"_id" binding:"required,objectid"`
	Debt       int    `json:"debt" binding:"gte=0"`
	PaidStatus int    `json:"paid_status" binding:"gte=0,lte=2"`
}

type BillRequest struct {
	Name      string         `json:"name" binding:"required"`
	TotalPaid int            `json:"total_paid" binding:"gte=0"`
	Guests    []GuestRequest `json:"guys" binding:"dive"`
}

type CreateEventRequest struct {
	Name     string        `json:"name" binding:"required"`
	UserList []UserRequest `json:"user_list" binding:"dive"`
	Bills    []BillRequest `json:"bills" binding:"dive"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// CreateEvent is the only unauthenticated write: it mints the event and
// answers with the host token that gates everything else.
func (h Handler) CreateEvent(c *gin.Context) {
	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	users := make([]model.User, len(request.UserList))
	for i, u := range request.UserList {
		users[i] = model.User{Name: u.Name, PhoneNumber: u.PhoneNumber, Bank: u.Bank}
	}

	bills := make([]model.Bill, len(request.Bills))
	for i, b := range request.Bills {
		bill, err := billFromRequest(b)
		if err != nil {
			_ = c.Error(err)
			return
		}
		bills[i] = bill
	}

	_, hostToken, err := h.eventService.Create(c.Request.Context(), request.Name, users, bills)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: hostToken})
}

// GetEvent returns the full document in the store's extended JSON shape,
// native id representations included.
func (h Handler) GetEvent(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	raw, err := h.eventService.Get(c.Request.Context(), principal.EventID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

type CreateBillResponse struct {
	Message string `json:"message"`
	BillID  string `json:"bill_id"`
}

// CreateBill appends a bill to the caller's event. A user token stamps
// its user as the bill's organizer; a host token leaves it unset.
func (h Handler) CreateBill(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request BillRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	bill, err := billFromRequest(request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	billID, err := h.eventService.AddBill(c.Request.Context(), principal.EventID, principal.UserID, bill)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CreateBillResponse{Message: "Bill created", BillID: billID.Hex()})
}

type CreateUserResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// CreateUser adds a participant and answers with their personal token,
// which carries the user id later writes act on.
func (h Handler) CreateUser(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request UserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user := model.User{Name: request.Name, PhoneNumber: request.PhoneNumber, Bank: request.Bank}
	userID, userToken, err := h.eventService.AddUser(c.Request.Context(), principal.EventID, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{UserID: userID.Hex(), Token: userToken})
}

type UpdateUserRequest struct {
	Field  string `json:"field" binding:"required"`
	NewVal string `json:"newVal" binding:"required"`
}

// UpdateUser patches one field of the caller's own user entry. The target
// user comes from the token's user_id claim, never from the body.
func (h Handler) UpdateUser(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !principal.HasUser() {
		_ = c.Error(errdef.NewForbidden("a user token is required to update a user"))
		return
	}

	var request UpdateUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	err = h.eventService.UpdateUserField(c.Request.Context(), principal.EventID, principal.UserID, request.Field, request.NewVal)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.String(http.StatusOK, "")
}

type PaymentResponse struct {
	Message string `json:"message"`
}

// PayBill lets the calling user claim their share of a bill as settled.
func (h Handler) PayBill(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !principal.HasUser() {
		_ = c.Error(errdef.NewForbidden("a user token is required to pay a bill"))
		return
	}

	billID, ok := handler.GetObjectIDPathParameter(c, "billId")
	if !ok {
		return
	}

	err = h.eventService.MarkBillPaid(c.Request.Context(), principal.EventID, billID, principal.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{Message: "Payment claimed, awaiting verification"})
}

type VerifyPaymentRequest struct {
	UserID string `json:"user_id" binding:"required,objectid"`
}

// VerifyPayment is host-only: it confirms a claimed payment.
func (h Handler) VerifyPayment(c *gin.Context) {
	principal, err := handler.GetPrincipalFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !principal.Host {
		_ = c.Error(errdef.NewForbidden("only the event host can verify payments"))
		return
	}

	var request VerifyPaymentRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(request.UserID)

	billID, ok := handler.GetObjectIDPathParameter(c, "billId")
	if !ok {
		return
	}

	err = h.eventService.VerifyBillPayment(c.Request.Context(), principal.EventID, billID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{Message: "Payment verified"})
}

func billFromRequest(request BillRequest) (model.Bill, error) {
	guests := make([]model.Guest, len(request.Guests))
	for i, g := range request.Guests {
		id, err := primitive.ObjectIDFromHex(g.ID)
		if err != nil {
			return model.Bill{}, errdef.NewBadRequest("guest id %q is not a valid id", g.ID)
		}
		guests[i] = model.Guest{ID: id, Debt: g.Debt, PaidStatus: model.PaidStatus(g.PaidStatus)}
	}

	return model.Bill{Name: request.Name, TotalPaid: request.TotalPaid, Guests: guests}, nil
}
