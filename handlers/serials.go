package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleSerialNormalize cleans up a pasted batch of serial numbers: trims,
// uppercases, drops duplicates and caps the list at the target count.
func HandleSerialNormalize() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			Serials []string `json:"serials"`
			Target  int      `json:"target"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if payload.Target <= 0 {
			return apiValidation(e, []string{"Target count must be positive"})
		}
		serials := services.NormalizeSerials(payload.Serials, payload.Target)
		return e.JSON(http.StatusOK, map[string]any{
			"serials":   serials,
			"count":     len(serials),
			"remaining": payload.Target - len(serials),
		})
	}
}

// HandleSerialBarcode renders a Code 128 label for one serial number.
func HandleSerialBarcode() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		serial := e.Request.PathValue("serial")
		if serial == "" {
			return apiError(e, http.StatusBadRequest, "serial is required")
		}
		png, err := services.SerialBarcodePNG(serial)
		if err != nil {
			log.Printf("serials: barcode render failed for %q: %v", serial, err)
			return apiError(e, http.StatusUnprocessableEntity, "could not render barcode")
		}
		return e.Blob(http.StatusOK, "image/png", png)
	}
}
