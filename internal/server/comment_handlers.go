package server

import (
	"strings"

	"artcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text" form:"text"`
}

// AddComment handles POST /api/v1/comment/:paintingId/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	paintingID, err := c.ParamsInt("paintingId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	if _, err := s.paintingRepo.GetByID(ctx, uint(paintingID), 0); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment text is required"))
	}

	comment := &models.Comment{
		Text:       req.Text,
		UserID:     userID,
		PaintingID: uint(paintingID),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Reload with the author populated for the response
	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Comment added successfully", created)
}

// GetComments handles GET /api/v1/comment/:paintingId/comment (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()

	paintingID, err := c.ParamsInt("paintingId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid painting ID"))
	}

	if _, err := s.paintingRepo.GetByID(ctx, uint(paintingID), 0); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	comments, err := s.commentRepo.ListByPainting(ctx, uint(paintingID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Comments fetched successfully", comments)
}

// DeleteComment handles DELETE /api/v1/comment/:commentId (author only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := c.ParamsInt("commentId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.commentRepo.GetByID(ctx, uint(commentID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment"))
	}

	if comment.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own comments"))
	}

	if err := s.commentRepo.Delete(ctx, uint(commentID)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Comment deleted successfully", nil)
}
