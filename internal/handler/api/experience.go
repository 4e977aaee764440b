package api

import (
	"net/http"

	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/handler/httperr"
	"experience-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ExperienceHandler struct {
	q queries.ExperienceQueries
}

func NewExperienceHandler(q queries.ExperienceQueries) *ExperienceHandler {
	return &ExperienceHandler{q: q}
}

// @Summary List experiences
// @Description List experience summaries without slot detail
// @Tags experiences
// @Produce json
// @Success 200 {array} resdto.ExperienceSummaryResponse
// @Failure 503 {object} httperr.Response
// @Router /experiences [get]
func (h *ExperienceHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromExperienceSummaries(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get experience
// @Description Get an experience with its days and slots
// @Tags experiences
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} resdto.ExperienceResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /experiences/{id} [get]
func (h *ExperienceHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExperienceView(view))
}
