package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes the one-shot error envelope every failed operation
// returns. Mutating calls are single atomic requests, so an error never
// leaves partial state behind.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// apiValidation reports local validation problems as a list of
// human-readable messages. These are expected incompleteness, not faults.
func apiValidation(e *core.RequestEvent, msgs []string) error {
	return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": msgs})
}

// decodeJSON reads a JSON request body into dst, capping the body size.
func decodeJSON(e *core.RequestEvent, dst any) error {
	body, err := io.ReadAll(io.LimitReader(e.Request.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
