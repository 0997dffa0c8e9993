package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberly/memberly/internal/api/dto"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/service"
)

// PlanHandler exposes subscription plan creation over HTTP.
type PlanHandler struct {
	service service.PlanService
	log     *logger.Logger
}

func NewPlanHandler(service service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{service: service, log: log}
}

// @Summary Create a subscription plan
// @Description Create a plan with its child rows, the subscription instance and the next cycle invoice
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanRequest true "Plan request"
// @Success 201 {object} dto.PlanSummary
// @Failure 400 {object} ierr.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ierr.NewErrorResponse(
			ierr.WithError(err).WithHint("Invalid request payload").Mark(ierr.ErrValidation)))
		return
	}

	resp, err := h.service.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Create multiple subscription plans
// @Description Create plans atomically or per plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.CreatePlansRequest true "Batch request"
// @Success 200 {object} dto.CreatePlansResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /plans/batch [post]
func (h *PlanHandler) CreatePlans(c *gin.Context) {
	var req dto.CreatePlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ierr.NewErrorResponse(
			ierr.WithError(err).WithHint("Invalid request payload").Mark(ierr.ErrValidation)))
		return
	}

	resp, err := h.service.CreatePlans(c.Request.Context(), &req)
	if err != nil {
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
