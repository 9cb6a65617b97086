package server

import (
	"tagline/internal/models"

	"github.com/gofiber/fiber/v2"
)

type followRequest struct {
	UserID uint `json:"user_id"`
}

func parseFollowTarget(c *fiber.Ctx) (uint, error) {
	var req followRequest
	if err := parseBody(c, &req); err != nil {
		return 0, err
	}
	if req.UserID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldError("user_id", "user_id is required"))
		return 0, errResponseWritten
	}
	return req.UserID, nil
}

// Follow handles PUT and POST /api/follow
// @Summary Follow a user
// @Description Following an already followed user succeeds without change
// @Tags follows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{user_id=int} true "User to follow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /follow/ [post]
func (s *Server) Follow(c *fiber.Ctx) error {
	targetID, err := parseFollowTarget(c)
	if err != nil {
		return nil
	}

	target, err := s.followService.Follow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "You are now following " + target.Email + "."})
}

// Unfollow handles DELETE /api/unfollow
// @Summary Unfollow a user
// @Tags follows
// @Accept json
// @Security BearerAuth
// @Param request body object{user_id=int} true "User to unfollow"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /unfollow/ [delete]
func (s *Server) Unfollow(c *fiber.Ctx) error {
	targetID, err := parseFollowTarget(c)
	if err != nil {
		return nil
	}

	if _, err := s.followService.Unfollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
