package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caknak/email_check_api/models"
	"github.com/caknak/email_check_api/pkg/breach"
	"github.com/caknak/email_check_api/pkg/handoff"
	"github.com/caknak/email_check_api/pkg/utils"
)

// HandoffTokenHeader carries the token for reading a result back once.
const HandoffTokenHeader = "X-Handoff-Token"

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// EmailChecker looks up one address. *breach.Checker implements it.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) (breach.LookupResult, error)
}

// EmailCheckHandlers serves breach lookups and result handoff.
type EmailCheckHandlers struct {
	checker  EmailChecker
	handoffs *handoff.Store
}

func NewEmailCheckHandlers(checker EmailChecker, handoffs *handoff.Store) *EmailCheckHandlers {
	return &EmailCheckHandlers{checker: checker, handoffs: handoffs}
}

// CheckEmailHandler godoc
// @Summary      Check an email address for known breaches
// @Description  Looks the address up in the breach registry. Answers "secure" or "at-risk"; when the registry is unreachable a simulated answer is returned (addresses containing "breach" come back at-risk). The X-Handoff-Token response header can be exchanged once for the same result.
// @Tags         Email Security
// @Accept       json
// @Produce      json
// @Param        request body models.CheckEmailRequest true "Email to check"
// @Success      200 {object} models.AtRiskResponse "At-risk result (a secure result is models.SecureResponse)"
// @Failure      400 {object} models.ErrorResponse "Invalid request format or missing email"
// @Failure      429 {object} models.ErrorResponse "Registry rate limit hit"
// @Failure      500 {object} models.ErrorResponse "Missing API key or unexpected failure"
// @Router       /email/check [post]
func (h *EmailCheckHandlers) CheckEmailHandler(c *gin.Context) {
	requestID := c.GetString(RequestIDKey)

	var req models.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[%s] WARN: failed to parse request body: %v", requestID, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request format"})
		return
	}
	email, ok := req.Email.(string)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Email is required"})
		return
	}

	log.Printf("[%s] Checking email: %s", requestID, utils.MaskEmail(email))
	result, err := h.checker.CheckEmail(c.Request.Context(), email)
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[%s] ERROR: email check failed: %v", requestID, err)
		} else {
			log.Printf("[%s] WARN: email check failed: %v", requestID, err)
		}
		if c.Request.Context().Err() != nil {
			// Client went away; nobody is left to answer.
			c.Abort()
			return
		}
		c.JSON(status, models.ErrorResponse{Error: message})
		return
	}

	if h.handoffs != nil {
		token, err := h.handoffs.Put(result)
		if err != nil {
			log.Printf("[%s] WARN: could not store result for handoff: %v", requestID, err)
		} else {
			c.Header(HandoffTokenHeader, token)
		}
	}
	if result.Simulated {
		c.Header("X-Simulated-Result", "true")
	}

	log.Printf("[%s] Email check finished: status=%s breaches=%d simulated=%t", requestID, result.Status, len(result.Breaches), result.Simulated)
	c.PureJSON(http.StatusOK, models.NewCheckEmailResponse(result))
}

// HandoffResultHandler godoc
// @Summary      Read a stored check result once
// @Description  Returns the result stored under a token issued by the check endpoint and deletes it. Tokens expire after a short TTL.
// @Tags         Email Security
// @Produce      json
// @Param        token path string true "Handoff token (UUID)"
// @Success      200 {object} models.AtRiskResponse "Stored result (secure results use models.SecureResponse)"
// @Failure      400 {object} models.ErrorResponse "Malformed token"
// @Failure      404 {object} models.ErrorResponse "Unknown, expired or already read token"
// @Router       /email/results/{token} [get]
func (h *EmailCheckHandlers) HandoffResultHandler(c *gin.Context) {
	token := c.Param("token")
	if _, err := uuid.Parse(token); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid result token"})
		return
	}
	if h.handoffs == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Result not found or already viewed"})
		return
	}

	result, ok := h.handoffs.Take(token)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Result not found or already viewed"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.PureJSON(http.StatusOK, models.NewCheckEmailResponse(result))
}

// errorStatus maps a lookup error onto an HTTP status and a user-facing message.
func errorStatus(err error) (int, string) {
	var upstreamErr *breach.UpstreamError
	switch {
	case errors.Is(err, breach.ErrInvalidInput):
		return http.StatusBadRequest, "Email is required"
	case errors.Is(err, breach.ErrConfiguration):
		return http.StatusInternalServerError, "Server configuration error (missing API key)"
	case errors.Is(err, breach.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests. Please try again later."
	case errors.As(err, &upstreamErr):
		// 2xx and 3xx registry statuses go out as 502; the message keeps the code.
		status := upstreamErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, fmt.Sprintf("API Error: %d", upstreamErr.StatusCode)
	default:
		return http.StatusInternalServerError, "Failed to check email security"
	}
}
