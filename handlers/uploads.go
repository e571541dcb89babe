package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"stallion/services"
)

// uploadTargets maps the collections that accept image uploads to their file
// fields. Anything outside this table is rejected.
var uploadTargets = map[string]map[string]bool{
	"products": {"image": true},
	"kits":     {"images": true},
	"brands":   {"logo": true},
	"settings": {"logo": true, "favicon": true},
}

// HandleImageUpload validates, optimizes and attaches an uploaded image to a
// record's file field. Oversized or non-image uploads are rejected before
// any processing.
func HandleImageUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		collection := e.Request.PathValue("collection")
		field := e.Request.PathValue("field")
		fields, ok := uploadTargets[collection]
		if !ok || !fields[field] {
			return apiError(e, http.StatusBadRequest, "uploads are not supported for this field")
		}

		rec, handlerErr := requireRecord(app, e, collection, "id")
		if rec == nil {
			return handlerErr
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "a file upload named 'file' is required")
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, services.MaxImageBytes+1))
		if err != nil {
			log.Printf("uploads: could not read upload: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not read upload")
		}
		if err := services.ValidateImageUpload(data); err != nil {
			return apiValidation(e, []string{err.Error()})
		}

		optimized, err := services.OptimizeImage(data)
		if err != nil {
			log.Printf("uploads: optimization failed, storing original: %v", err)
			optimized = data
		}

		f, err := filesystem.NewFileFromBytes(optimized, header.Filename)
		if err != nil {
			log.Printf("uploads: could not wrap file: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not store upload")
		}

		if field == "images" {
			rec.Set(field+"+", f)
		} else {
			rec.Set(field, f)
		}
		if err := app.Save(rec); err != nil {
			log.Printf("uploads: could not save %s/%s: %v", collection, rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not store upload")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":    rec.Id,
			"field": field,
			"files": rec.GetStringSlice(field),
		})
	}
}

// HandleImageRemove detaches a stored file from a record's file field.
func HandleImageRemove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		collection := e.Request.PathValue("collection")
		field := e.Request.PathValue("field")
		fields, ok := uploadTargets[collection]
		if !ok || !fields[field] {
			return apiError(e, http.StatusBadRequest, "uploads are not supported for this field")
		}

		rec, handlerErr := requireRecord(app, e, collection, "id")
		if rec == nil {
			return handlerErr
		}

		var payload struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if payload.Name == "" {
			return apiValidation(e, []string{"File name is required"})
		}

		rec.Set(fmt.Sprintf("%s-", field), payload.Name)
		if err := app.Save(rec); err != nil {
			log.Printf("uploads: could not remove file from %s/%s: %v", collection, rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not remove file")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"id":    rec.Id,
			"field": field,
			"files": rec.GetStringSlice(field),
		})
	}
}
