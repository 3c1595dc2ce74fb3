package server

import (
	"errors"
	"strings"

	"artcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createBoardRequest struct {
	Name string `json:"name" form:"name"`
}

type boardPaintingRequest struct {
	BoardID    uint `json:"boardId" form:"boardId"`
	PaintingID uint `json:"paintingId" form:"paintingId"`
}

// CreateBoard handles POST /api/v1/board/create
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req createBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Board name is required"))
	}

	board := &models.Board{
		Name:   req.Name,
		UserID: userID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Board created successfully", board)
}

// GetUserBoards handles GET /api/v1/board/
func (s *Server) GetUserBoards(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	boards, err := s.boardRepo.ListByUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Boards fetched successfully", boards)
}

// GetBoardByID handles GET /api/v1/board/:boardId
func (s *Server) GetBoardByID(c *fiber.Ctx) error {
	ctx := c.Context()

	boardID, err := c.ParamsInt("boardId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid board ID"))
	}

	board, err := s.boardRepo.GetByID(ctx, uint(boardID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Board"))
	}

	return models.Respond(c, fiber.StatusOK, "Board fetched successfully", board)
}

// AddPaintingToBoard handles PUT /api/v1/board/add-painting
func (s *Server) AddPaintingToBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req boardPaintingRequest
	if err := c.BodyParser(&req); err != nil || req.BoardID == 0 || req.PaintingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Board ID and painting ID are required"))
	}

	board, err := s.boardRepo.GetByID(ctx, req.BoardID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Board"))
	}
	if board.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only modify your own boards"))
	}

	if _, err := s.paintingRepo.GetByID(ctx, req.PaintingID, 0); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Painting"))
	}

	if err := s.boardRepo.AddPainting(ctx, req.BoardID, req.PaintingID); err != nil {
		// Only the duplicate-pin case is the caller's fault
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithError(c, appErr.Status, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.boardRepo.GetByID(ctx, req.BoardID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Painting added to board", updated)
}

// RemovePaintingFromBoard handles PUT /api/v1/board/remove-painting.
// Removing a painting that is not on the board is a no-op, not an error.
func (s *Server) RemovePaintingFromBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req boardPaintingRequest
	if err := c.BodyParser(&req); err != nil || req.BoardID == 0 || req.PaintingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Board ID and painting ID are required"))
	}

	board, err := s.boardRepo.GetByID(ctx, req.BoardID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Board"))
	}
	if board.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only modify your own boards"))
	}

	if err := s.boardRepo.RemovePainting(ctx, req.BoardID, req.PaintingID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.boardRepo.GetByID(ctx, req.BoardID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Painting removed from board", updated)
}

// DeleteBoard handles DELETE /api/v1/board/:boardId (owner only)
func (s *Server) DeleteBoard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	boardID, err := c.ParamsInt("boardId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid board ID"))
	}

	board, err := s.boardRepo.GetByID(ctx, uint(boardID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Board"))
	}
	if board.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own boards"))
	}

	if err := s.boardRepo.Delete(ctx, uint(boardID)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.Respond(c, fiber.StatusOK, "Board deleted successfully", nil)
}
