package handler

import (
	"context"
	"errors"

	"devconnector/internal/delivery/http/dto"
	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/domain/user"
	"devconnector/internal/pkg/response"
	"devconnector/internal/pkg/validation"
	ucauth "devconnector/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type AuthHandler struct {
	uc AuthUsecase
}

type registerRequest struct {
	Name     string `json:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

func NewAuthHandler(uc AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts POST /users on users and the login and current-user
// routes on auth.
func (h *AuthHandler) RegisterRoutes(users, authGroup fiber.Router, guard fiber.Handler) {
	if users != nil {
		users.Post("/", h.Register)
	}
	if authGroup != nil {
		authGroup.Post("/", h.Login)
		authGroup.Get("/", guard, h.Me)
	}
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	u, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewUserResponse(u))
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewValidationError([]validation.FieldError{{Msg: "User already exists"}})
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewValidationError([]validation.FieldError{{Msg: "Invalid Credentials"}})
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgUserNotFound, nil, err)
	default:
		return err
	}
}
