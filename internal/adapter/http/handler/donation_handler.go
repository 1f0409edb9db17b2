package handler

import (
	"errors"
	"strconv"

	"voucher-donation-gateway/internal/adapter/http/dto"
	"voucher-donation-gateway/internal/core/ports"
	"voucher-donation-gateway/pkg/apperror"
	"voucher-donation-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// DonationHandler handles voucher claims and dashboard reads.
type DonationHandler struct {
	donationSvc  ports.DonationService
	reportingSvc ports.ReportingService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(donationSvc ports.DonationService, reportingSvc ports.ReportingService) *DonationHandler {
	return &DonationHandler{donationSvc: donationSvc, reportingSvc: reportingSvc}
}

// Claim handles POST /api/v1/donations.
func (h *DonationHandler) Claim(c *gin.Context) {
	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(dto.ValidationMessage(err)))
		return
	}
	dto.SanitizeStruct(&req)

	result := h.donationSvc.Claim(c.Request.Context(), ports.ClaimRequest{
		VoucherLink: req.VoucherLink,
		DonorName:   req.DonorName,
		Message:     req.Message,
		ClientIP:    c.ClientIP(),
	})

	if result.Success {
		response.Created(c, result.Message, result.Data)
		return
	}

	var appErr *apperror.AppError
	errors.As(result.Err, &appErr)
	response.Failure(c, appErr, result.Message)
}

// Recent handles GET /api/v1/donations/recent?limit=N.
func (h *DonationHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	donations, err := h.reportingSvc.RecentDonations(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewDonationItems(donations))
}

// Stats handles GET /api/v1/donations/stats.
func (h *DonationHandler) Stats(c *gin.Context) {
	response.OK(c, h.reportingSvc.Stats(c.Request.Context()))
}
