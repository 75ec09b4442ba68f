package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feed-service/internal/api/dto"
	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/service"
	"github.com/spec-kit/feed-service/pkg/util"
)

// PostsHandler exposes post mutations.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// Delete handles DELETE /posts/:id (admin only, enforced by the router).
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	postID := c.Params("id")
	if postID == "" {
		return fiber.NewError(http.StatusBadRequest, "post id required")
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("Missing or invalid Bearer token provided.")
	}

	if err := h.posts.DeletePost(c.Context(), principal.User(), postID); err != nil {
		return err
	}

	return c.JSON(dto.DeleteResponse{Message: fmt.Sprintf("Post %s deleted.", postID)})
}
