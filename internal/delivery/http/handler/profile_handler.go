package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"devconnector/internal/delivery/http/dto"
	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"
	"devconnector/internal/infrastructure/github"
	"devconnector/internal/pkg/response"
	"devconnector/internal/pkg/validation"
	ucprofile "devconnector/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	msgNoProfile          = "There is no profile for this user"
	msgProfileNotFound    = "Profile not found"
	msgExperienceNotFound = "Experience not found"
	msgEducationNotFound  = "Education not found"
	msgUserNotFound       = "User not found"
	msgUserDeleted        = "User deleted"
	msgNoGithubProfile    = "No Github profile found"
	msgGithubFailed       = "Github lookup failed"
)

type ProfileUsecase interface {
	GetOwn(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error)
	ListAll(ctx context.Context) ([]profile.Profile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Remove(ctx context.Context, userID uuid.UUID) error
	AddExperience(ctx context.Context, userID uuid.UUID, e profile.Experience) (profile.Profile, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, e profile.Education) (profile.Profile, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error)
}

type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]github.Repo, error)
}

type ProfileHandler struct {
	uc     ProfileUsecase
	github RepoLister
}

// skillList accepts either a comma separated string or a JSON array.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*s = profile.ParseSkills(raw)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = profile.ParseSkills(strings.Join(items, ","))
	return nil
}

type profileRequest struct {
	Company        *string   `json:"company"`
	Location       *string   `json:"location"`
	Website        *string   `json:"website"`
	Bio            *string   `json:"bio"`
	Status         *string   `json:"status"`
	Skills         skillList `json:"skills"`
	GitHubUsername *string   `json:"githubusername"`
	YouTube        *string   `json:"youtube"`
	Twitter        *string   `json:"twitter"`
	Instagram      *string   `json:"instagram"`
	LinkedIn       *string   `json:"linkedin"`
	Facebook       *string   `json:"facebook"`
}

func (r profileRequest) fields() profile.Fields {
	f := profile.Fields{
		Company:        present(r.Company),
		Location:       present(r.Location),
		Website:        present(r.Website),
		Bio:            present(r.Bio),
		Status:         present(r.Status),
		GitHubUsername: present(r.GitHubUsername),
		Social: profile.SocialFields{
			YouTube:   present(r.YouTube),
			Twitter:   present(r.Twitter),
			Instagram: present(r.Instagram),
			LinkedIn:  present(r.LinkedIn),
			Facebook:  present(r.Facebook),
		},
	}
	if len(r.Skills) > 0 {
		f.Skills = []string(r.Skills)
	}
	return f
}

type experienceRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required"`
	Company     string `json:"company" validate:"required" msg:"Company is required"`
	Location    string `json:"location" validate:"required" msg:"Location is required"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school" validate:"required" msg:"School is required"`
	Degree       string `json:"degree" validate:"required" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from" validate:"required" msg:"From date is required"`
	To           string `json:"to" validate:"required" msg:"To date is required"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileHandler(uc ProfileUsecase, gh RepoLister) *ProfileHandler {
	return &ProfileHandler{uc: uc, github: gh}
}

// RegisterRoutes mounts the profile routes on r. auth guards the routes
// that act on the caller's own profile.
func (h *ProfileHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/user/:user_id", h.GetByUser)
	r.Get("/github/:username", h.GitHubRepos)

	r.Get("/me", auth, h.GetMe)
	r.Post("/", auth, h.Upsert)
	r.Delete("/", auth, h.Delete)
	r.Put("/experience", auth, h.AddExperience)
	r.Delete("/experience/:exp_id", auth, h.RemoveExperience)
	r.Put("/education", auth, h.AddEducation)
	r.Delete("/education/:edu_id", auth, h.RemoveEducation)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetOwn(c.Context(), userID)
	if err != nil {
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Upsert(c.Context(), userID, req.fields())
	if err != nil {
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	ps, err := h.uc.ListAll(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileListResponse(ps))
}

func (h *ProfileHandler) GetByUser(c fiber.Ctx) error {
	userID, err := pathID(c, "user_id", msgProfileNotFound)
	if err != nil {
		return err
	}

	p, err := h.uc.GetByUser(c.Context(), userID)
	if err != nil {
		return mapProfileError(err, msgProfileNotFound)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), userID); err != nil {
		return err
	}
	return response.Message(c, fiber.StatusOK, msgUserDeleted)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	from, to, errs := parseRange(req.From, req.To)
	if len(errs) > 0 {
		return middleware.NewValidationError(errs)
	}

	p, err := h.uc.AddExperience(c.Context(), userID, profile.Experience{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := h.uc.RemoveExperience(c.Context(), userID, c.Params("exp_id"))
	if err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, msgExperienceNotFound, nil, err)
		}
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req educationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	from, to, errs := parseRange(req.From, req.To)
	if len(errs) > 0 {
		return middleware.NewValidationError(errs)
	}

	p, err := h.uc.AddEducation(c.Context(), userID, profile.Education{
		School:       strings.TrimSpace(req.School),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  strings.TrimSpace(req.Description),
	})
	if err != nil {
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	p, err := h.uc.RemoveEducation(c.Context(), userID, c.Params("edu_id"))
	if err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, msgEducationNotFound, nil, err)
		}
		return mapProfileError(err, msgNoProfile)
	}
	return response.Success(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) GitHubRepos(c fiber.Ctx) error {
	repos, err := h.github.ListRepos(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, msgNoGithubProfile, nil, err)
		}
		return middleware.NewAppError(fiber.StatusBadGateway, msgGithubFailed, nil, err)
	}
	return response.Success(c, fiber.StatusOK, repos)
}

// parseRange parses the from/to dates of a sub-entry. An empty from stays
// zero and an empty to stays nil; both serialize as null.
func parseRange(rawFrom, rawTo string) (profile.Date, *profile.Date, []validation.FieldError) {
	var errs []validation.FieldError
	var from profile.Date
	if strings.TrimSpace(rawFrom) != "" {
		d, err := profile.ParseDate(rawFrom)
		if err != nil {
			errs = append(errs, validation.FieldError{Msg: "From date is invalid", Param: "from", Location: validation.LocationBody})
		} else {
			from = d
		}
	}

	var to *profile.Date
	if strings.TrimSpace(rawTo) != "" {
		d, err := profile.ParseDate(rawTo)
		if err != nil {
			errs = append(errs, validation.FieldError{Msg: "To date is invalid", Param: "to", Location: validation.LocationBody})
		} else {
			to = &d
		}
	}
	return from, to, errs
}

func mapProfileError(err error, notFound string) error {
	var verr *ucprofile.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewValidationError(verr.Errors)
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgUserNotFound, nil, err)
	default:
		return err
	}
}
