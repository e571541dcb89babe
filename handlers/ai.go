package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleGenerateDescription asks the content generator for catalog copy.
// Rate limits and exhausted quotas map onto their own status codes so the
// admin UI can show the right message.
func HandleGenerateDescription(gen services.ContentGenerator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if gen == nil {
			return apiError(e, http.StatusServiceUnavailable, "AI content generation is not configured")
		}

		var req services.ContentRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if req.Name == "" {
			return apiValidation(e, []string{"A product or kit name is required"})
		}

		description, err := gen.GenerateDescription(e.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRateLimited):
				return apiError(e, http.StatusTooManyRequests, "AI service is rate limited, try again shortly")
			case errors.Is(err, services.ErrPaymentRequired):
				return apiError(e, http.StatusPaymentRequired, "AI service quota exhausted")
			}
			log.Printf("ai: generation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not generate description")
		}

		return e.JSON(http.StatusOK, map[string]string{"description": description})
	}
}
