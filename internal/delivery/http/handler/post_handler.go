package handler

import (
	"context"
	"errors"

	"devconnector/internal/delivery/http/dto"
	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/domain/post"
	"devconnector/internal/domain/user"
	"devconnector/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	msgPostNotFound    = "Post not found"
	msgPostRemoved     = "Post removed"
	msgNotAuthorized   = "User not authorized"
	msgAlreadyLiked    = "Post already liked"
	msgNotLiked        = "Post has not yet been liked"
	msgCommentNotFound = "Comment does not exist"
)

type PostUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (post.Post, error)
	List(ctx context.Context) ([]post.Post, error)
	Get(ctx context.Context, id uuid.UUID) (post.Post, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Like(ctx context.Context, id, userID uuid.UUID) ([]post.Like, error)
	Unlike(ctx context.Context, id, userID uuid.UUID) ([]post.Like, error)
	Comment(ctx context.Context, id, userID uuid.UUID, text string) ([]post.Comment, error)
	Uncomment(ctx context.Context, id, commentID, userID uuid.UUID) ([]post.Comment, error)
}

type PostHandler struct {
	uc PostUsecase
}

type textRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

func NewPostHandler(uc PostUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

// RegisterRoutes mounts the post routes on r, which must already be guarded.
func (h *PostHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Delete("/:id", h.Delete)
	r.Put("/like/:id", h.Like)
	r.Put("/unlike/:id", h.Unlike)
	r.Post("/comment/:id", h.Comment)
	r.Delete("/comment/:id/:comment_id", h.Uncomment)
}

func (h *PostHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req textRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), userID, req.Text)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewPostResponse(p))
}

func (h *PostHandler) List(c fiber.Ctx) error {
	ps, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, dto.NewPostListResponse(ps))
}

func (h *PostHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id", msgPostNotFound)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewPostResponse(p))
}

func (h *PostHandler) Delete(c fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, userID); err != nil {
		return mapPostError(err)
	}
	return response.Message(c, fiber.StatusOK, msgPostRemoved)
}

func (h *PostHandler) Like(c fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return err
	}

	likes, err := h.uc.Like(c.Context(), id, userID)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.Likes(likes))
}

func (h *PostHandler) Unlike(c fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return err
	}

	likes, err := h.uc.Unlike(c.Context(), id, userID)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.Likes(likes))
}

func (h *PostHandler) Comment(c fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req textRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	comments, err := h.uc.Comment(c.Context(), id, userID, req.Text)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.Comments(comments))
}

func (h *PostHandler) Uncomment(c fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id", msgCommentNotFound)
	if err != nil {
		return err
	}

	comments, err := h.uc.Uncomment(c.Context(), id, commentID, userID)
	if err != nil {
		return mapPostError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.Comments(comments))
}

// target resolves the caller and the post id of the path.
func (h *PostHandler) target(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUser(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := pathID(c, "id", msgPostNotFound)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, id, nil
}

func mapPostError(err error) error {
	switch {
	case errors.Is(err, post.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgPostNotFound, nil, err)
	case errors.Is(err, post.ErrForbidden):
		return middleware.NewAppError(fiber.StatusUnauthorized, msgNotAuthorized, nil, err)
	case errors.Is(err, post.ErrAlreadyLiked):
		return middleware.NewAppError(fiber.StatusBadRequest, msgAlreadyLiked, nil, err)
	case errors.Is(err, post.ErrNotLiked):
		return middleware.NewAppError(fiber.StatusBadRequest, msgNotLiked, nil, err)
	case errors.Is(err, post.ErrCommentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgCommentNotFound, nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgUserNotFound, nil, err)
	default:
		return err
	}
}
