package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"stallion/collections"
	"stallion/handlers"
	"stallion/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("main: no .env file loaded: %v", err)
	}

	app := pocketbase.New()
	sessions := services.NewSessionStore()
	mailer := services.NewMailerFromEnv()

	var generator services.ContentGenerator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gen, err := services.NewGenAIGenerator(apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("main: AI generator disabled: %v", err)
		} else {
			generator = gen
		}
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.SiteSettingsMiddleware(app))

		// ── Public catalog ───────────────────────────────────────
		se.Router.GET("/api/products", handlers.HandleProductList(app))
		se.Router.GET("/api/products/{id}", handlers.HandleProductView(app))
		se.Router.GET("/api/brands", handlers.HandleBrandList(app))
		se.Router.GET("/api/kits", handlers.HandleKitList(app))
		se.Router.GET("/api/kits/{id}", handlers.HandleKitView(app))
		se.Router.GET("/api/alerts", handlers.HandleAlertList(app))
		se.Router.POST("/api/enquiries", handlers.HandleEnquiryCreate(app, mailer))

		// ── Wizard sessions ──────────────────────────────────────
		se.Router.POST("/api/wizard", handlers.HandleWizardStart(app, sessions))
		se.Router.GET("/api/wizard/{sessionId}", handlers.HandleWizardState(sessions))
		se.Router.POST("/api/wizard/{sessionId}/advance", handlers.HandleWizardAdvance(sessions))
		se.Router.POST("/api/wizard/{sessionId}/retreat", handlers.HandleWizardRetreat(sessions))
		se.Router.POST("/api/wizard/{sessionId}/jump", handlers.HandleWizardJump(sessions))
		se.Router.PATCH("/api/wizard/{sessionId}/draft", handlers.HandleWizardDraft(sessions))
		se.Router.POST("/api/wizard/{sessionId}/items", handlers.HandleWizardAddItem(sessions))
		se.Router.PATCH("/api/wizard/{sessionId}/items/{index}", handlers.HandleWizardUpdateItem(sessions))
		se.Router.DELETE("/api/wizard/{sessionId}/items/{index}", handlers.HandleWizardRemoveItem(sessions))
		se.Router.GET("/api/wizard/{sessionId}/review", handlers.HandleWizardReview(sessions))
		se.Router.POST("/api/wizard/{sessionId}/submit", handlers.HandleWizardSubmit(app, sessions))

		// ── Admin API ────────────────────────────────────────────
		admin := se.Router.Group("/api/admin")
		admin.BindFunc(handlers.RequireAdminToken(os.Getenv("ADMIN_TOKEN")))

		admin.POST("/products", handlers.HandleProductCreate(app))
		admin.PATCH("/products/{id}", handlers.HandleProductUpdate(app))
		admin.DELETE("/products/{id}", handlers.HandleProductDelete(app))

		admin.POST("/brands", handlers.HandleBrandCreate(app))
		admin.DELETE("/brands/{id}", handlers.HandleBrandDelete(app))

		admin.GET("/vendors", handlers.HandleVendorList(app))
		admin.POST("/vendors", handlers.HandleVendorCreate(app))
		admin.PATCH("/vendors/{id}", handlers.HandleVendorUpdate(app))
		admin.DELETE("/vendors/{id}", handlers.HandleVendorDelete(app))

		admin.GET("/quotations", handlers.HandleQuotationList(app))
		admin.GET("/quotations/{id}", handlers.HandleQuotationView(app))
		admin.PATCH("/quotations/{id}/status", handlers.HandleQuotationStatus(app))
		admin.DELETE("/quotations/{id}", handlers.HandleQuotationDelete(app))
		admin.GET("/quotations/{id}/snapshots", handlers.HandleQuotationSnapshots(app))
		admin.GET("/quotations/{id}/export/pdf", handlers.HandleQuotationExportPDF(app))
		admin.GET("/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app))

		admin.PATCH("/kits/{id}/status", handlers.HandleKitStatus(app))
		admin.DELETE("/kits/{id}", handlers.HandleKitDelete(app))
		admin.GET("/kits/{id}/snapshots", handlers.HandleKitSnapshots(app))

		admin.GET("/settings", handlers.HandleSettingsView(app))
		admin.PATCH("/settings", handlers.HandleSettingsUpdate(app))

		admin.POST("/alerts", handlers.HandleAlertCreate(app))
		admin.POST("/alerts/{id}/toggle", handlers.HandleAlertToggle(app))
		admin.DELETE("/alerts/{id}", handlers.HandleAlertDelete(app))

		admin.GET("/enquiries", handlers.HandleEnquiryList(app))

		admin.POST("/uploads/{collection}/{id}/{field}", handlers.HandleImageUpload(app))
		admin.DELETE("/uploads/{collection}/{id}/{field}", handlers.HandleImageRemove(app))

		admin.POST("/ai/description", handlers.HandleGenerateDescription(generator))

		admin.POST("/pricing/suggest", handlers.HandleSuggestedPrices())

		admin.POST("/serials/normalize", handlers.HandleSerialNormalize())
		admin.GET("/serials/{serial}/barcode", handlers.HandleSerialBarcode())

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
