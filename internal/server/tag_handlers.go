package server

import (
	"tagline/internal/models"
	"tagline/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tagNameRequest struct {
	Name string `json:"name"`
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	page := parsePagination(c, service.DefaultPageSize)

	tags, err := s.tagService.ListTags(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tags)
}

// CreateTag handles POST /api/tags
// @Summary Create a tag
// @Description Returns the existing tag with 200 when the name is taken
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string} true "Tag"
// @Success 201 {object} models.Tag
// @Success 200 {object} models.Tag
// @Failure 400 {object} models.ErrorResponse
// @Router /tags/ [post]
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req tagNameRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	tag, created, err := s.tagService.CreateTag(c.UserContext(), currentUserID(c), req.Name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(tag)
}

// GetOwnTags handles GET /api/tags/user
func (s *Server) GetOwnTags(c *fiber.Ctx) error {
	tags, err := s.tagService.OwnTags(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tag)
}

// UpdateTag handles PUT and PATCH /api/tags/:id (staff)
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req tagNameRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	tag, err := s.tagService.RenameTag(c.UserContext(), id, req.Name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id (staff)
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tagService.DeleteTag(c.UserContext(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteUnusedTag handles DELETE /api/tags/:id/delete
// @Summary Delete an unused own tag
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "tag in use or owned by another user"
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id}/delete/ [delete]
func (s *Server) DeleteUnusedTag(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tagService.DeleteUnusedTag(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
