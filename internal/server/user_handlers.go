package server

import (
	"artcanvas/internal/models"
	"artcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/v1/user/profile. The caller's own profile is
// returned with boards and saved paintings populated and the password excluded.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	user.Password = ""
	return models.Respond(c, fiber.StatusOK, "User profile fetched successfully", user)
}

// UpdateProfile handles PATCH /api/v1/user/update. Only supplied fields change.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	username := c.FormValue("username")
	email := c.FormValue("email")
	bio := c.FormValue("bio")

	if username == "" && email == "" && bio == "" {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Bio      string `json:"bio"`
		}
		if err := c.BodyParser(&req); err == nil {
			username, email, bio = req.Username, req.Email, req.Bio
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if existing != nil {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("Email already in use"))
		}
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}
	if bio != "" {
		user.Bio = bio
	}

	// Optional avatar re-upload
	if fh, ferr := c.FormFile("avatar"); ferr == nil && fh != nil {
		in, rerr := service.ReadMultipartFile(fh)
		if rerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, rerr)
		}
		url, uerr := s.images.Upload(ctx, in)
		if uerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, uerr)
		}
		user.Avatar = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user.Password = ""
	return models.Respond(c, fiber.StatusOK, "User profile updated successfully", user)
}
