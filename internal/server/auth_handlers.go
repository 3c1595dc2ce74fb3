package server

import (
	"fmt"
	"strconv"
	"time"

	"artcanvas/internal/models"
	"artcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/v1/user/register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	// The client may also send JSON instead of a multipart form
	if username == "" && email == "" && password == "" {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err == nil {
			username, email, password = req.Username, req.Email, req.Password
		}
	}

	if username == "" || email == "" || password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("User already exists"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	avatar := models.DefaultAvatarURL
	if fh, ferr := c.FormFile("avatar"); ferr == nil && fh != nil {
		in, rerr := service.ReadMultipartFile(fh)
		if rerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, rerr)
		}
		url, uerr := s.images.Upload(ctx, in)
		if uerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, uerr)
		}
		avatar = url
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   avatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusCreated, "User created successfully", nil)
}

// Login handles GET /api/v1/user/login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	// Find user by email
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User does not exist"))
	}

	// Compare password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Incorrect password"))
	}

	// Generate session token and set it as an http-only cookie
	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return models.Respond(c, fiber.StatusOK, "User logged in successfully", nil)
}

// Logout handles GET /api/v1/user/logout. Sessions are stateless, so logout
// only clears the cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return models.Respond(c, fiber.StatusOK, "User logged out successfully", nil)
}

// generateToken creates a signed session token for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
