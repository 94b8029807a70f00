package v1

import (
	"net/http"
	"strings"

	"graduate-showcase-backend/internal/delivery/http/response"
	"graduate-showcase-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type GraduateHandler struct {
	directoryUC domain.DirectoryUsecase
}

func NewGraduateHandler(public *gin.RouterGroup, directoryUC domain.DirectoryUsecase) {
	handler := &GraduateHandler{directoryUC: directoryUC}

	graduates := public.Group("/graduates")
	{
		graduates.GET("", handler.Browse)
		graduates.GET("/facets", handler.Facets)
	}
}

// Browse godoc
// @Summary      Browse the graduate directory
// @Description  Lists approved graduate profiles. All filters combine with AND; omitted filters match everything.
// @Tags         graduates
// @Produce      json
// @Param        keyword    query  string  false  "Free-text search over name, role, location, and skills"
// @Param        techStack  query  string  false  "Comma-separated skills; a profile must match all of them"
// @Param        location   query  string  false  "Location substring"
// @Param        role       query  string  false  "Exact role (case-insensitive)"
// @Param        cohort     query  string  false  "Graduation cohort substring"
// @Success      200  {object}  response.Response{data=[]domain.GraduateCard}
// @Router       /graduates [get]
func (h *GraduateHandler) Browse(c *gin.Context) {
	criteria := domain.FilterCriteria{
		Keyword:          strings.TrimSpace(c.Query("keyword")),
		TechStack:        splitCSV(c.Query("techStack")),
		Location:         strings.TrimSpace(c.Query("location")),
		Role:             strings.TrimSpace(c.Query("role")),
		GraduationCohort: strings.TrimSpace(c.Query("cohort")),
	}

	cards, err := h.directoryUC.Browse(c, criteria)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Graduate directory", cards)
}

// Facets godoc
// @Summary      Get directory filter facets
// @Description  Returns the distinct roles, cohorts, skills, and locations present in the visible directory.
// @Tags         graduates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Facets}
// @Router       /graduates/facets [get]
func (h *GraduateHandler) Facets(c *gin.Context) {
	facets, err := h.directoryUC.Facets(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Directory facets", facets)
}

// splitCSV splits a comma-separated query value, dropping empty parts.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
