package controllers

import (
	"net/http"
	"time"

	"hotel-guest-services/services"
	"hotel-guest-services/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// GetRevenueAnalytics (GET /api/analytics/revenue?dateFrom&dateTo&groupBy)
func (ac *AnalyticsController) GetRevenueAnalytics(c *gin.Context) {
	params := services.AnalyticsParams{GroupBy: c.Query("groupBy")}

	if raw := c.Query("dateFrom"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "dateFrom must be YYYY-MM-DD")
			return
		}
		params.From = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "dateTo must be YYYY-MM-DD")
			return
		}
		params.To = &t
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		utils.JSONError(c, http.StatusBadRequest, "dateTo must not precede dateFrom")
		return
	}

	report, err := ac.Analytics.Report(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, report)
}
