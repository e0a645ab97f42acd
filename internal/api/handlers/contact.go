package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/dto/common"
	"github.com/afandihd/portfolio-backend/internal/api/dto/v1/contact"
	"github.com/afandihd/portfolio-backend/internal/api/validation"
	"github.com/afandihd/portfolio-backend/internal/logging"
	"github.com/afandihd/portfolio-backend/internal/mailer"
	"github.com/afandihd/portfolio-backend/internal/service"
	"github.com/afandihd/portfolio-backend/internal/utils"
)

// ContactHandler sequences the contact submission pipeline: parse,
// validate, CAPTCHA, bot heuristics, email dispatch. Guard and rate
// limiting run as route middleware before it.
type ContactHandler struct {
	validator *validation.Validator
	turnstile *service.TurnstileService
	robot     *service.RobotService
	mailer    mailer.Sender
	logger    *logging.Logger
}

// NewContactHandler wires the pipeline stages. The turnstile service is
// the single source of truth for "is CAPTCHA enabled"; the validator
// must be constructed from the same answer.
func NewContactHandler(
	validator *validation.Validator,
	turnstile *service.TurnstileService,
	robot *service.RobotService,
	sender mailer.Sender,
	logger *logging.Logger,
) *ContactHandler {
	return &ContactHandler{
		validator: validator,
		turnstile: turnstile,
		robot:     robot,
		mailer:    sender,
		logger:    logger,
	}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	clientIP := utils.GetClientIP(c)

	req, ok := h.parseBody(c)
	if !ok {
		return
	}

	if fieldErr := h.validator.ValidateContactForm(req); fieldErr != nil {
		c.JSON(http.StatusBadRequest,
			common.NewValidationErrorResponse(fieldErr.Message, fieldErr.Field))
		return
	}

	if h.turnstile.Enabled() {
		remoteIP := clientIP
		if remoteIP == utils.UnknownIP {
			remoteIP = ""
		}
		result := h.turnstile.Verify(c.Request.Context(), req.TurnstileToken, remoteIP)
		if !result.Success {
			h.logger.Warn("Turnstile verification failed: %s (ip=%s)", result.Error, clientIP)
			c.JSON(http.StatusBadRequest,
				common.NewErrorResponse("CAPTCHA verification failed. Please try again."))
			return
		}
	}

	// Bot heuristics run even when Turnstile passed. A detected robot
	// gets the normal success response so the detection stays opaque;
	// the email send is skipped entirely.
	robotCheck := h.robot.Validate(service.RobotCheckInput{
		Honeypot:       req.Honeypot,
		SubmissionTime: req.SubmissionTime,
	})
	if robotCheck.IsRobot {
		h.logger.Warn("Robot detected: %s (ip=%s)", robotCheck.Reason, clientIP)
		c.JSON(http.StatusOK, common.NewSuccessResponse("Message sent successfully"))
		return
	}

	name, email, message := req.EmailData()
	meta := mailer.Metadata{
		Timestamp:      time.Now(),
		SubmissionTime: req.SubmissionTime,
		UserAgent:      c.Request.UserAgent(),
	}
	if clientIP != utils.UnknownIP {
		meta.IPAddress = clientIP
	}

	result := h.mailer.Send(c.Request.Context(), mailer.ContactData{
		Name:    name,
		Email:   email,
		Message: message,
	}, meta)

	// Delivery failure is logged for operator follow-up but never
	// surfaced: once a submission passed validation and anti-abuse,
	// the visitor gets an acknowledgement.
	if !result.Success {
		h.logger.Error("Email sending failed: %s", result.Error)
		h.logger.Info("Contact form submission (email failed): name=%q email=%q message=%q",
			name, email, message)
	} else if result.Warning != "" {
		h.logger.Warn("Email dispatched with warning: %s", result.Warning)
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse("Message sent successfully"))
}

// MethodNotAllowed answers any non-POST verb on the contact endpoint.
func (h *ContactHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse("Method not allowed"))
}

// parseBody reads and decodes the JSON payload. The body reader is
// already capped by the request guard, so an over-long body surfaces
// here as a MaxBytesError.
func (h *ContactHandler) parseBody(c *gin.Context) (*contact.ContactRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge,
				common.NewErrorResponse("Request body too large"))
			return nil, false
		}
		c.JSON(http.StatusBadRequest,
			common.NewErrorResponse("Invalid JSON in request body"))
		return nil, false
	}

	var req contact.ContactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest,
			common.NewErrorResponse("Invalid JSON in request body"))
		return nil, false
	}

	return &req, true
}
