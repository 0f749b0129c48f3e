package offer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	service *Service
}

func NewOfferHandler(s *Service) *OfferHandler {
	return &OfferHandler{
		service: s,
	}
}

func (h *OfferHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/offers", h.GetOffersHandler)
	// legacy route kept for clients of the original proxy
	router.POST("/get-price", h.GetOffersHandler)
}

// GetOffersHandler godoc
// @Summary      Price a stay
// @Description  Returns one offer per bookable room with total price and availability for the requested dates and occupancy
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        request body StayRequest true "Stay Criteria"
// @Success      200 {object} OffersResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/offers [post]
func (h *OfferHandler) GetOffersHandler(c *gin.Context) {
	var req StayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.GetOffers(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		body := gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		}
		if appErr.Details != nil {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.Status, body)
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
