package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/OlexiiMelnik/app-users/internal/application"
	"github.com/OlexiiMelnik/app-users/internal/domain/repository"
	"github.com/OlexiiMelnik/app-users/internal/interface/middleware"
	"github.com/OlexiiMelnik/app-users/pkg/response"
	"github.com/OlexiiMelnik/app-users/pkg/types"
	"github.com/OlexiiMelnik/app-users/pkg/validation"
)

// UserService is the application surface the handler depends on.
type UserService interface {
	Register(ctx context.Context, in userapp.RegisterInput) (*userapp.UserResponse, error)
	Update(ctx context.Context, email string, in userapp.UpdateInput) (*userapp.UserResponse, error)
	DeleteByID(ctx context.Context, id int64) error
	FindUsersByBirthDateRange(ctx context.Context, from, to types.Date, p repository.Pageable) ([]userapp.UserResponse, error)
}

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=7,max=60,eqfield=RepeatPassword"`
	RepeatPassword string     `json:"repeatPassword"`
	BirthDate      types.Date `json:"birthDate" binding:"required,past,ageover"`
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName" binding:"required"`
	Address        string     `json:"address"`
	Phone          string     `json:"phone"`
}

// updateRequest has no email, password, or role fields: the update
// contract cannot alter them.
type updateRequest struct {
	BirthDate types.Date `json:"birthDate" binding:"required,past,ageover"`
	FirstName string     `json:"firstName" binding:"required"`
	LastName  string     `json:"lastName" binding:"required"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
}

// Register handles POST /api/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrRegistration) {
			response.Error[any](c, http.StatusConflict, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, res, "user registered", nil)
}

// UpdateProfile handles PUT /api/users. The target is always the
// authenticated principal; the id never comes from the request.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	email := middleware.PrincipalEmail(c)
	if email == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Update(c.Request.Context(), email, userapp.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).WithField("email", email).Error("profile update failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "profile updated", nil)
}

// Delete handles DELETE /api/users/:id (admin only). Responds 204 even
// when the id does not exist; delete is idempotent.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	if err := h.Svc.DeleteByID(c.Request.Context(), id); err != nil {
		h.Logger.WithError(err).WithField("id", id).Error("delete failed")
		response.Error[any](c, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// FindByBirthDateRange handles GET /api/users (admin only) with
// fromDate/toDate plus pagination parameters.
func (h *UserHandler) FindByBirthDateRange(c *gin.Context) {
	from, err := types.ParseDate(c.Query("fromDate"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"fromDate": "must be a valid date (YYYY-MM-DD)"})
		return
	}
	to, err := types.ParseDate(c.Query("toDate"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"toDate": "must be a valid date (YYYY-MM-DD)"})
		return
	}

	pageable := repository.Pageable{
		Page: intQuery(c, "page", 0),
		Size: intQuery(c, "size", repository.DefaultPageSize),
		Sort: c.Query("sort"),
	}

	res, err := h.Svc.FindUsersByBirthDateRange(c.Request.Context(), from, to, pageable)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidDateRange) {
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("birth date search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "users", map[string]any{
		"page": pageable.Page,
		"size": pageable.Limit(),
	})
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return def
	}
	return i
}
