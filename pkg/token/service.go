package token

import (
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/pkg/model"
)

const (
	eventIDClaim = "event_id"
	userIDClaim  = "user_id"
	hostClaim    = "host"
)

// NewService returns a token service signing and verifying with the given
// shared secret. The service is stateless; tokens carry no expiration, an
// event's token is its capability for the event's whole lifetime.
func NewService(secretKey string) *Service {
	return &Service{secretKey: []byte(secretKey)}
}

type Service struct {
	secretKey []byte
}

// IssueHostToken mints the event-scoped token returned at event creation.
// Only host tokens may verify payments.
func (s *Service) IssueHostToken(eventID primitive.ObjectID) (string, error) {
	t, err := newToken(eventID)
	if err != nil {
		return "", err
	}
	if err := t.Set(hostClaim, true); err != nil {
		return "", err
	}
	return s.sign(t)
}

// IssueUserToken mints a token identifying both the event and a single
// user within it, returned when the user is added to the event.
func (s *Service) IssueUserToken(eventID, userID primitive.ObjectID) (string, error) {
	t, err := newToken(eventID)
	if err != nil {
		return "", err
	}
	if err := t.Set(userIDClaim, userID.Hex()); err != nil {
		return "", err
	}
	return s.sign(t)
}

// Verify checks the signature and decodes the embedded identifiers. Any
// failure, from a missing token to a bad signature to an unparsable event
// id, comes back as an unauthorized error.
func (s *Service) Verify(signed string) (model.Principal, error) {
	t, err := jwt.Parse([]byte(signed), jwt.WithKey(jwa.HS256, s.secretKey))
	if err != nil {
		return model.Principal{}, errdef.NewUnauthorized("token not valid")
	}

	eventHex, ok := t.Get(eventIDClaim)
	if !ok {
		return model.Principal{}, errdef.NewUnauthorized("token has no %s claim", eventIDClaim)
	}
	eventID, err := objectIDClaim(eventHex)
	if err != nil {
		return model.Principal{}, errdef.NewUnauthorized("token %s claim not valid", eventIDClaim)
	}

	p := model.Principal{EventID: eventID}

	if userHex, ok := t.Get(userIDClaim); ok {
		p.UserID, err = objectIDClaim(userHex)
		if err != nil {
			return model.Principal{}, errdef.NewUnauthorized("token %s claim not valid", userIDClaim)
		}
	}

	if host, ok := t.Get(hostClaim); ok {
		p.Host, _ = host.(bool)
	}

	return p, nil
}

func newToken(eventID primitive.ObjectID) (jwt.Token, error) {
	t := jwt.New()

	if err := t.Set(eventIDClaim, eventID.Hex()); err != nil {
		return nil, err
	}
	if err := t.Set(jwt.JwtIDKey, uuid.NewString()); err != nil {
		return nil, err
	}
	// iat is stamped but exp deliberately is not, see Verify.
	if err := t.Set(jwt.IssuedAtKey, time.Now().Unix()); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) sign(t jwt.Token) (string, error) {
	signed, err := jwt.Sign(t, jwt.WithKey(jwa.HS256, s.secretKey))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

func objectIDClaim(value any) (primitive.ObjectID, error) {
	hex, ok := value.(string)
	if !ok {
		return primitive.NilObjectID, errdef.NewUnauthorized("claim is not a string")
	}
	return primitive.ObjectIDFromHex(hex)
}
