// internal/auth/auth.go
//
// Identity provider for the HTTP front-end.
// Responsibilities:
//   - Signup: validate credentials, hash the password (bcrypt), create the user.
//   - Login: verify credentials.
//   - Sign / Parse: HS256 JWTs carrying the user id (sub) and username.
//
// Anonymous players never reach this package; they are keyed by a cookie id.

package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError reports why signup input was refused.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}()

// Credentials is the signup/login payload.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Username":
				return &ValidationError{Msg: "username must be 3-20 characters of letters, digits, '_' or '-'"}
			case "Password":
				return &ValidationError{Msg: "password must be at least 6 characters"}
			}
		}
		return &ValidationError{Msg: err.Error()}
	}
	return nil
}

// Claims is the JWT payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Options struct {
	Secret []byte
	TTL    time.Duration
	Cost   int // bcrypt cost; 0 means bcrypt.DefaultCost
}

type Service struct {
	users Users
	opts  Options
	log   zerolog.Logger
}

func NewService(users Users, opts Options, logger zerolog.Logger) *Service {
	if opts.Cost == 0 {
		opts.Cost = bcrypt.DefaultCost
	}
	if opts.TTL <= 0 {
		opts.TTL = 14 * 24 * time.Hour
	}
	return &Service{users: users, opts: opts, log: logger.With().Str("component", "auth").Logger()}
}

func (s *Service) Signup(ctx context.Context, c Credentials) (User, error) {
	c.Username = strings.TrimSpace(c.Username)
	if err := c.Validate(); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.opts.Cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     c.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return User{}, err
	}
	s.log.Info().Str("user", u.ID).Str("username", u.Username).Msg("signup")
	return u, nil
}

func (s *Service) Login(ctx context.Context, c Credentials) (User, error) {
	u, err := s.users.ByUsername(ctx, c.Username)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Sign issues a token for u and returns it with its expiry.
func (s *Service) Sign(u User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := token.SignedString(s.opts.Secret)
	return ss, exp, err
}

// Parse validates a token and returns its claims.
func (s *Service) Parse(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" || claims.Username == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate parses the token and checks the user still exists.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (User, error) {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return User{}, err
	}
	u, err := s.users.ByID(ctx, claims.Subject)
	if err != nil {
		return User{}, ErrInvalidToken
	}
	return u, nil
}
