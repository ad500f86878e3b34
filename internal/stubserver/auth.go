package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/mawa3id/booking-client/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

type registerRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Phone        string `json:"phone"        validate:"required"`
	Password     string `json:"password"     validate:"required,min=6"`
}

type profileUpdateRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Phone        string `json:"phone"        validate:"required"`
	Password     string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, ok := s.state.createAccount(req.BusinessName, strings.ToLower(req.Email), req.Phone, hash)
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	}

	session, err := s.issueSession(user)
	if err != nil {
		return err
	}
	session.Message = "User registered successfully"
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, hash, ok := s.state.credentialsByEmail(strings.ToLower(req.Email))
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	var user *domain.User
	s.state.withAccount(id, func(acc *account) {
		user = acc.user()
	})

	session, err := s.issueSession(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) handleGetProfile(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}
	var user *domain.User
	s.state.withAccount(id, func(acc *account) {
		user = acc.user()
	})
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	id, err := s.currentAccountID(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user *domain.User
	s.state.withAccount(id, func(acc *account) {
		acc.BusinessName = req.BusinessName
		acc.Phone = req.Phone
		if req.Password != "" {
			if hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost); hashErr == nil {
				acc.PasswordHash = hash
			}
		}
		user = acc.user()
	})
	return c.JSON(http.StatusOK, user)
}

// issueSession signs an HS256 access token plus an opaque refresh token.
// The client treats both as opaque strings; expiry is enforced here only.
func (s *Server) issueSession(user *domain.User) (*domain.AuthSession, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.MapClaims{
		"sub": user.ID,
		"typ": "refresh",
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &domain.AuthSession{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// bearerAuth validates the JWT and stashes the account id in context.
func (s *Server) bearerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !tkn.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		sub, _ := claims["sub"].(string)
		c.Set("accountID", sub)
		return next(c)
	}
}

func (s *Server) currentAccountID(c echo.Context) (string, error) {
	id, _ := c.Get("accountID").(string)
	if !s.state.exists(id) {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
	}
	return id, nil
}
