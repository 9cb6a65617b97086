package server

import (
	"tagline/internal/models"
	"tagline/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile/:id
// @Summary Get a user profile
// @Description User with follower/following counts and ids and authored posts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{id}/ [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// GetFollowers handles GET /api/profile/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/profile/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// UpdateProfile handles PUT and PATCH /api/profile/edit
// @Summary Edit own profile
// @Description Applies every non-empty field
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{email=string,bio=string,profile_picture=string,password=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /profile/edit/ [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Email          string `json:"email"`
		Bio            string `json:"bio"`
		ProfilePicture string `json:"profile_picture"`
		Password       string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		Email:          req.Email,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword handles PUT /api/profile/change-password
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{old_password=string,new_password=string} true "Passwords"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/change-password/ [put]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.userService.ChangePassword(c.UserContext(), currentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password has been changed successfully."})
}
