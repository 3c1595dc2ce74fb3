package server

import (
	"errors"

	"artcanvas/internal/models"
	"artcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UploadPainting handles POST /api/v1/painting/create-painting. Title,
// description, categories and the image file are all required; the image is
// delegated to the external host and only its URL persisted.
func (s *Server) UploadPainting(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	title := c.FormValue("title")
	description := c.FormValue("description")
	categories := c.FormValue("categories")
	tags := c.FormValue("tags")

	if title == "" || description == "" || categories == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title, description, and categories are required"))
	}

	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	in, err := service.ReadMultipartFile(fh)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	imageURL, err := s.images.Upload(ctx, in)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	painting := &models.Painting{
		Title:       title,
		Description: description,
		Categories:  categories,
		Tags:        tags,
		ImageURL:    imageURL,
		ArtistID:    userID,
	}

	if err := s.paintingRepo.Create(ctx, painting); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Load artist data for the response
	created, err := s.paintingRepo.GetByID(ctx, painting.ID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Painting uploaded successfully", created)
}

// GetAllPaintings handles GET /api/v1/painting/all-paintings (public)
func (s *Server) GetAllPaintings(c *fiber.Ctx) error {
	ctx := c.Context()

	paintings, err := s.paintingRepo.List(ctx, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Paintings fetched successfully", paintings)
}

// GetPaintingByID handles GET /api/v1/painting/single/:id
func (s *Server) GetPaintingByID(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	painting, err := s.paintingRepo.GetByID(ctx, uint(id), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	return models.Respond(c, fiber.StatusOK, "Painting fetched successfully", painting)
}

// GetUserPaintings handles GET /api/v1/painting/user-paintings. Newest first;
// an artist with no paintings yet gets a not-found error.
func (s *Server) GetUserPaintings(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	paintings, err := s.paintingRepo.GetByArtistID(ctx, userID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(paintings) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Paintings"))
	}

	return models.Respond(c, fiber.StatusOK, "Paintings fetched successfully", paintings)
}

// UpdatePainting handles PATCH /api/v1/painting/user/:id (owner only)
func (s *Server) UpdatePainting(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	painting, err := s.paintingRepo.GetByID(ctx, uint(id), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	// Check ownership
	if painting.ArtistID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own paintings"))
	}

	if title := c.FormValue("title"); title != "" {
		painting.Title = title
	}
	if description := c.FormValue("description"); description != "" {
		painting.Description = description
	}
	if categories := c.FormValue("categories"); categories != "" {
		painting.Categories = categories
	}
	if tags := c.FormValue("tags"); tags != "" {
		painting.Tags = tags
	}

	// Optional replacement image
	if fh, ferr := c.FormFile("image"); ferr == nil && fh != nil {
		in, rerr := service.ReadMultipartFile(fh)
		if rerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, rerr)
		}
		url, uerr := s.images.Upload(ctx, in)
		if uerr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, uerr)
		}
		painting.ImageURL = url
	}

	if err := s.paintingRepo.Update(ctx, painting); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Painting updated successfully", painting)
}

// DeletePainting handles DELETE /api/v1/painting/:paintingId (owner only)
func (s *Server) DeletePainting(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("paintingId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	painting, err := s.paintingRepo.GetByID(ctx, uint(id), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	// Check ownership
	if painting.ArtistID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own paintings"))
	}

	if err := s.paintingRepo.Delete(ctx, uint(id)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Painting deleted successfully", nil)
}

// ToggleLikePainting handles PUT /api/v1/painting/:paintingId.
// Membership toggle: if the caller already likes the painting the like is
// removed, otherwise it is added. Returns the resulting painting.
func (s *Server) ToggleLikePainting(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("paintingId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	if _, err := s.paintingRepo.GetByID(ctx, uint(id), 0); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	liked, err := s.paintingRepo.IsLiked(ctx, userID, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	message := "Painting liked"
	if liked {
		message = "Painting unliked"
		err = s.paintingRepo.Unlike(ctx, userID, uint(id))
	} else {
		err = s.paintingRepo.Like(ctx, userID, uint(id))
	}
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	painting, err := s.paintingRepo.GetByID(ctx, uint(id), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return models.Respond(c, fiber.StatusOK, message, painting)
}

// ToggleSavePainting handles POST /api/v1/painting/:paintingId.
// Same toggle pattern as liking, but against the caller's saved collection.
func (s *Server) ToggleSavePainting(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("paintingId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	if _, err := s.paintingRepo.GetByID(ctx, uint(id), 0); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	saved, err := s.userRepo.IsSaved(ctx, userID, uint(id))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	message := "Painting saved"
	if saved {
		message = "Painting unsaved"
		err = s.userRepo.UnsavePainting(ctx, userID, uint(id))
	} else {
		err = s.userRepo.SavePainting(ctx, userID, uint(id))
	}
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	painting, err := s.paintingRepo.GetByID(ctx, uint(id), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return models.Respond(c, fiber.StatusOK, message, painting)
}
