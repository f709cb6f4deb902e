package controller

import (
	"errors"
	"manassa_backend/internal/service"
	"manassa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/profile [get]
func (ctl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update name or interface language
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileReq true "Fields to update"
// @Success 200 {object} util.Response
// @Router /api/users/profile [put]
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, user)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} util.Response
// @Router /api/users/avatar [post]
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	url, err := ctl.UserService.UploadAvatar(c.Request.Context(), claims.UserID, file)
	if err != nil {
		if errors.Is(err, util.ErrInvalidImageExt) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"avatar": url})
}
