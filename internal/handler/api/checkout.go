package api

import (
	"net/http"

	reqdto "experience-booking/internal/handler/dto/request"
	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/handler/httperr"
	"experience-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Validate promo code
// @Description Compute the discount a promo code grants on a subtotal
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.ValidatePromoRequest true "Promo validation request"
// @Success 200 {object} resdto.PromoResponse
// @Failure 400 {object} httperr.Response
// @Router /promo/validate [post]
func (h *CheckoutHandler) ValidatePromo(c *gin.Context) {
	var req reqdto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result := h.cmds.ValidatePromo(*req.Code, *req.Subtotal)
	c.JSON(http.StatusOK, resdto.FromPromoResult(result))
}

// @Summary Quote checkout
// @Description Price an experience server-side with an optional promo code
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /quotes [post]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Quote(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteResult(result))
}
