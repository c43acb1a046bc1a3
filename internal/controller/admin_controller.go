package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/middleware"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Service *service.AdminService
}

func NewAdminController(svc *service.AdminService) *AdminController {
	return &AdminController{Service: svc}
}

// @Summary Unlock admin mode
// @Description Verifies the shared secret passed as a query parameter; success is sticky for the session and also yields a bearer token
// @Tags admin
// @Produce json
// @Param admin_token query string true "shared admin secret"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "invalid token"
// @Router /admin/login [get]
func (c *AdminController) Login(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	token := ctx.Query("admin_token")
	if !c.Service.VerifyToken(token) {
		util.Error(ctx, http.StatusUnauthorized, "Invalid token")
		return
	}

	sess.GrantAdmin()

	bearer, err := c.Service.IssueToken()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": bearer})
}

// @Summary Leave admin mode
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/logout [post]
func (c *AdminController) Logout(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)
	sess.RevokeAdmin()

	util.Success(ctx, gin.H{"isAdmin": false})
}

// @Summary Current question bank overview
// @Description Lists the active questions (id and stem only) for the admin panel
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/questions [get]
func (c *AdminController) Questions(ctx *gin.Context) {
	util.Success(ctx, c.Service.Overview())
}

// @Summary Upload a replacement question workbook
// @Description Validates required columns before activating; on failure the previous question set stays active
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param file formData file true "xlsx workbook with columns id, question, option1..option4, correct_answer"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "missing columns or malformed rows"
// @Router /admin/questions/upload [post]
func (c *AdminController) UploadQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	total, err := c.Service.ReplaceQuestions(data)
	if err != nil {
		var verr *util.ValidationError
		if errors.As(err, &verr) {
			util.BadRequest(ctx, verr.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.ActiveQuestions.Set(float64(total))

	util.Success(ctx, gin.H{
		"message": "Questions uploaded successfully",
		"total":   total,
	})
}
