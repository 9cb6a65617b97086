package server

import (
	"strconv"

	"tagline/internal/models"
	"tagline/internal/repository"
	"tagline/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tagRequest struct {
	Name string `json:"name"`
}

func tagNames(tags []tagRequest) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// postFilter parses the list query, writing a 400 for malformed filters.
func postFilter(c *fiber.Ctx) (repository.PostFilter, error) {
	f, err := service.ParsePostFilter(c.Queries())
	if err != nil {
		_ = models.RespondWithAppError(c, err)
		return f, errResponseWritten
	}
	return f, nil
}

// HeaderNextOffset carries the offset of the next page when a listing
// filled the requested page.
const HeaderNextOffset = "X-Next-Offset"

// respondPage writes a post listing. A full page advertises the next offset;
// a short page is the last one.
func respondPage(c *fiber.Ctx, f repository.PostFilter, posts []models.Post) error {
	if f.Limit > 0 && len(posts) >= f.Limit {
		c.Set(HeaderNextOffset, strconv.Itoa(f.Offset+f.Limit))
	}
	return c.JSON(posts)
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Filters: tags__name (comma list = all of), tags__name__icontains, text__icontains, date_created__gte|lte|exact, likes_count__exact|gte|lte, ordering
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param tags__name query string false "Tag names, comma separated; posts must carry all of them"
// @Param likes_count__exact query int false "Exact like count"
// @Param date_created__gte query string false "YYYY-MM-DD or RFC3339"
// @Param ordering query string false "date_created, -date_created, likes_count, -likes_count"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Post
// @Header 200 {integer} X-Next-Offset "Offset of the next page, absent on the last page"
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/ [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter, err := postFilter(c)
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPosts(c.UserContext(), filter, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return respondPage(c, filter, posts)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Unknown tag names are created; known ones are reused
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{text=string,image=string,tags=[]object{name=string}} true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/ [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text  string       `json:"text"`
		Image string       `json:"image"`
		Tags  []tagRequest `json:"tags"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID: currentUserID(c),
		Text:   req.Text,
		Image:  req.Image,
		Tags:   tagNames(req.Tags),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT and PATCH /api/posts/:id
// @Summary Update a post
// @Description Owner or staff only. Omitted fields are unchanged; tags replaces the tag set.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{text=string,image=string,tags=[]object{name=string}} true "Fields"
// @Success 200 {object} models.Post
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/ [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text  *string       `json:"text"`
		Image *string       `json:"image"`
		Tags  *[]tagRequest `json:"tags"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := service.UpdatePostInput{
		UserID: currentUserID(c),
		PostID: id,
		Text:   req.Text,
		Image:  req.Image,
	}
	if req.Tags != nil {
		names := tagNames(*req.Tags)
		in.Tags = &names
	}

	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
// @Summary Like a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts/{id}/like/ [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post liked."})
}

// UnlikePost handles DELETE /api/posts/:id/unlike
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post unliked."})
}

// GetPostLikes handles GET /api/posts/:id/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.likeService.Likers(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// GetLikedPosts handles GET /api/likes
// Paged like GetPosts.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	filter, err := postFilter(c)
	if err != nil {
		return nil
	}

	posts, err := s.postService.LikedPosts(c.UserContext(), currentUserID(c), filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return respondPage(c, filter, posts)
}

// GetFeed handles GET /api/feed
// @Summary Following feed
// @Description Posts by accounts the caller follows, excluding the caller's own; accepts the post list filters and paging
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Post
// @Header 200 {integer} X-Next-Offset "Offset of the next page, absent on the last page"
// @Failure 400 {object} models.ErrorResponse
// @Router /feed/ [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	filter, err := postFilter(c)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.Feed(c.UserContext(), currentUserID(c), filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return respondPage(c, filter, posts)
}
