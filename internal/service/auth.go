package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/model"
	"yatube/pkg/logger"
)

const DefaultSessionTTL = 14 * 24 * time.Hour

type AuthService struct {
	userStorage UserStorage
	secret      []byte
	ttl         time.Duration
	hashCost    int
	now         func() time.Time
}

func NewAuthService(userStorage UserStorage, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		userStorage: userStorage,
		secret:      []byte(secret),
		ttl:         ttl,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *AuthService) SignUp(ctx context.Context, form SignUpForm) (model.User, error) {
	form = form.normalized()
	if fe := checkForm(form); !fe.Empty() {
		return model.User{}, fe
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.hashCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userStorage.CreateUser(ctx, model.User{
		Username:     form.Username,
		PasswordHash: string(hash),
	})
	if errors.Is(err, ErrUsernameTaken) {
		fe := &FormError{}
		fe.Add("username", msgUsernameTaken)
		return model.User{}, fe
	}
	if err != nil {
		return model.User{}, err
	}

	logger.FromContext(ctx).Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, model.Identity, error) {
	user, err := s.userStorage.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return "", model.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", model.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.Identity{}, ErrInvalidCredentials
	}

	id := model.Identity{UserID: user.ID, Username: user.Username}
	token, err := s.IssueToken(id)
	if err != nil {
		return "", model.Identity{}, err
	}
	return token, id, nil
}

func (s *AuthService) IssueToken(id model.Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// ParseToken returns the identity of a valid session token and
// ErrUnauthenticated for anything else.
func (s *AuthService) ParseToken(token string) (model.Identity, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return model.Identity{}, fmt.Errorf("%w: bad subject", ErrUnauthenticated)
	}
	return model.Identity{UserID: userID, Username: claims.Username}, nil
}
