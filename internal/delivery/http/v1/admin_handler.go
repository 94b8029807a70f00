package v1

import (
	"net/http"
	"strings"

	"graduate-showcase-backend/internal/delivery/http/response"
	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/moderation"
	"graduate-showcase-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationUC domain.ModerationUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, moderationUC domain.ModerationUsecase) {
	handler := &AdminHandler{moderationUC: moderationUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/stats", handler.GetStats)

		admin.GET("/graduates", handler.ListGraduates)
		admin.PATCH("/graduates/:id/approve", handler.Approve)
		admin.PATCH("/graduates/:id/reject", handler.Reject)
		admin.PATCH("/graduates/:id/archive", handler.Archive)
		admin.PATCH("/graduates/:id/unarchive", handler.Unarchive)
		admin.DELETE("/graduates/:id", handler.DeleteGraduate)
	}
}

// GetStats godoc
// @Summary      Get moderation dashboard statistics
// @Description  Returns profile counts per moderation status plus verified and archived totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.DirectoryStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.moderationUC.Stats(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListGraduates godoc
// @Summary      List graduate profiles for review
// @Description  Returns the active or archived review queue with optional status and cohort filters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        archived  query  bool    false  "List archived profiles instead of active ones"
// @Param        status    query  string  false  "Filter by moderation status (pending, approved, rejected)"
// @Param        cohort    query  string  false  "Graduation cohort substring"
// @Success      200  {object}  response.Response{data=[]domain.GraduateProfile}
// @Failure      403  {object}  response.Response
// @Router       /admin/graduates [get]
func (h *AdminHandler) ListGraduates(c *gin.Context) {
	q := domain.ReviewQuery{
		Archived:         c.Query("archived") == "true",
		Status:           moderation.Status(strings.TrimSpace(c.Query("status"))),
		GraduationCohort: strings.TrimSpace(c.Query("cohort")),
	}

	profiles, err := h.moderationUC.ListForReview(c, q)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review queue", profiles)
}

// Approve godoc
// @Summary      Approve a graduate profile
// @Description  Marks the profile as approved and verified, making it publicly visible
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.GraduateProfile}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/graduates/{id}/approve [patch]
func (h *AdminHandler) Approve(c *gin.Context) {
	h.transition(c, moderation.ActionApprove, "Profile approved")
}

// Reject godoc
// @Summary      Reject a graduate profile
// @Description  Marks the profile as rejected and clears its verification
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.GraduateProfile}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/graduates/{id}/reject [patch]
func (h *AdminHandler) Reject(c *gin.Context) {
	h.transition(c, moderation.ActionReject, "Profile rejected")
}

// Archive godoc
// @Summary      Archive a graduate profile
// @Description  Hides the profile from the public directory without changing its moderation status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.GraduateProfile}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/graduates/{id}/archive [patch]
func (h *AdminHandler) Archive(c *gin.Context) {
	h.transition(c, moderation.ActionArchive, "Profile archived")
}

// Unarchive godoc
// @Summary      Unarchive a graduate profile
// @Description  Restores an archived profile; approved profiles become publicly visible again
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.GraduateProfile}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/graduates/{id}/unarchive [patch]
func (h *AdminHandler) Unarchive(c *gin.Context) {
	h.transition(c, moderation.ActionUnarchive, "Profile restored")
}

func (h *AdminHandler) transition(c *gin.Context, action moderation.Action, message string) {
	profileID := c.Param("id")
	if profileID == "" {
		c.Error(apperror.BadRequest("Profile ID is required"))
		return
	}

	profile, err := h.moderationUC.Transition(c, profileID, action)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, message, profile)
}

// DeleteGraduate godoc
// @Summary      Delete a graduate profile
// @Description  Permanently deletes the profile. Requires confirm=true; without it the request is rejected.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true  "Profile ID"
// @Param        confirm  query  bool    true  "Must be true to delete"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/graduates/{id} [delete]
func (h *AdminHandler) DeleteGraduate(c *gin.Context) {
	profileID := c.Param("id")
	if profileID == "" {
		c.Error(apperror.BadRequest("Profile ID is required"))
		return
	}
	if c.Query("confirm") != "true" {
		c.Error(apperror.BadRequest("Deletion must be confirmed with confirm=true"))
		return
	}

	if err := h.moderationUC.Delete(c, profileID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile deleted", nil)
}
