//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"experience-booking/internal/domain/pricing"
	"experience-booking/internal/handler/api"
	resdto "experience-booking/internal/handler/dto/response"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/commands"
	"experience-booking/tests/common/httptest"
	"experience-booking/tests/common/testutil"
	commandsmock "experience-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)

	s.router.POST("/promo/validate", s.handler.ValidatePromo)
	s.router.POST("/quotes", s.handler.Quote)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) TestValidatePromo() {
	url := "/promo/validate"
	reqBody := map[string]any{"code": "save10", "subtotal": 999}

	s.Run("success: known code", func() {
		s.mockCommands.EXPECT().ValidatePromo("save10", int64(999)).
			Return(commands.PromoResult{Code: "SAVE10", Valid: true, Discount: 100}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.PromoResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Valid)
		s.Equal(int64(100), body.Discount)
	})

	s.Run("success: empty code is accepted and invalid", func() {
		s.mockCommands.EXPECT().ValidatePromo("", int64(999)).
			Return(commands.PromoResult{}).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("code", ""))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"valid":false,"discount":0}`, rec.Body.String())
	})

	cases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing code", mutate: testutil.Field("code", nil)},
		{name: "missing subtotal", mutate: testutil.Field("subtotal", nil)},
		{name: "subtotal is a string", mutate: testutil.Field("subtotal", "999")},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}
}

func (s *CheckoutHandlerTestSuite) TestQuote() {
	url := "/quotes"

	s.Run("success: returns the breakdown", func() {
		s.mockCommands.EXPECT().Quote(gomock.Any(), commands.QuoteInput{ExperienceID: "1", Quantity: 2, Code: "FLAT100"}).
			Return(&commands.QuoteResult{
				Quote: pricing.Quote{BasePrice: 999, Quantity: 2, Subtotal: 1998, Taxes: 118, Discount: 100, Total: 2016},
				Promo: commands.PromoResult{Code: "FLAT100", Valid: true, Discount: 100},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"experienceId": "1", "quantity": 2, "code": "FLAT100"})

		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(1998), body.Subtotal)
		s.Equal(int64(118), body.Taxes)
		s.Equal(int64(2016), body.Total)
		s.True(body.PromoValid)
		s.False(body.DiscountClamped)
	})

	s.Run("error: 400 when experienceId is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"quantity": 1})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 when quantity is above the limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"experienceId": "1", "quantity": 101})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 for an unknown experience", func() {
		s.mockCommands.EXPECT().Quote(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(commands.ErrExperienceNotFound, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"experienceId": "nope"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}
