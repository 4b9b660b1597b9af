package admin

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the admin token lifetime. Expiry is the only termination
// mechanism; there is no server-side revocation.
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of an admin token.
type Claims struct {
	ID    string
	Email string
}

type Service struct {
	repo   Repository
	secret []byte
}

func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: []byte(secret)}
}

// Authenticate checks credentials. Unknown email and wrong password
// return the same error.
func (s *Service) Authenticate(email, password string) (Admin, error) {
	adm, err := s.repo.GetByEmail(email)
	if err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password)) != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return adm, nil
}

// IssueToken signs a 1-day token for the authenticated admin.
func (s *Service) IssueToken(adm Admin) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    adm.ID,
		"email": adm.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates signature and expiry and returns the claims.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	return Claims{ID: id, Email: email}, nil
}
