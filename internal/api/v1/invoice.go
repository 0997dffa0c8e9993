package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberly/memberly/internal/api/dto"
	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/service"
)

// InvoiceHandler exposes invoice pricing and finalization over HTTP.
type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

func NewInvoiceHandler(service service.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

// @Summary Create a purchase invoice
// @Description Price a purchased entity tree into an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.CreatePurchaseRequest true "Purchase request"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices/purchase [post]
func (h *InvoiceHandler) CreatePurchaseInvoice(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ierr.NewErrorResponse(
			ierr.WithError(err).WithHint("Invalid request payload").Mark(ierr.ErrValidation)))
		return
	}

	resp, err := h.service.CreatePurchaseInvoice(c.Request.Context(), &req)
	if err != nil {
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Finalize an invoice
// @Description Capture payment for the invoice and mark it paid
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.FinalizeInvoiceRequest true "Payment routing"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices/{id}/finalize [post]
func (h *InvoiceHandler) FinalizeInvoice(c *gin.Context) {
	var req dto.FinalizeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ierr.NewErrorResponse(
			ierr.WithError(err).WithHint("Invalid request payload").Mark(ierr.ErrValidation)))
		return
	}

	resp, err := h.service.FinalizeInvoice(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
