package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/collections"
	"merchtrack/handlers"
)

func main() {
	// Optional .env with costing defaults; missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded costing defaults from .env")
	}

	app := pocketbase.New()

	// Create collections, seed data and repair legacy records on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyEnvelopes(app); err != nil {
			log.Printf("Warning: envelope migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Costing defaults available to every handler
		se.Router.BindFunc(handlers.CostingDefaultsMiddleware(app))

		// ── Cost sheets ──────────────────────────────────────────
		se.Router.GET("/cost-sheets", handlers.HandleCostSheetList(app))
		se.Router.GET("/cost-sheets/check-style", handlers.HandleCheckStyle(app))
		se.Router.POST("/cost-sheets", handlers.HandleCostSheetCreate(app))

		// Export routes must precede the bare /{id} route
		se.Router.GET("/cost-sheets/{id}/export/excel", handlers.HandleCostSheetExportExcel(app))
		se.Router.GET("/cost-sheets/{id}/export/pdf", handlers.HandleCostSheetExportPDF(app))

		se.Router.GET("/cost-sheets/{id}", handlers.HandleCostSheetView(app))
		se.Router.PUT("/cost-sheets/{id}", handlers.HandleCostSheetUpdate(app))
		se.Router.DELETE("/cost-sheets/{id}", handlers.HandleCostSheetDelete(app))

		// ── TNA schedules ────────────────────────────────────────
		se.Router.GET("/tna", handlers.HandleTNAList(app))
		se.Router.POST("/tna", handlers.HandleTNACreate(app))
		se.Router.GET("/tna/{id}", handlers.HandleTNAView(app))
		se.Router.PATCH("/tna/{id}/tasks/{taskId}", handlers.HandleTNATaskUpdate(app))
		se.Router.DELETE("/tna/{id}", handlers.HandleTNADelete(app))

		// ── Samples ──────────────────────────────────────────────
		se.Router.GET("/samples", handlers.HandleSampleList(app))
		se.Router.POST("/samples", handlers.HandleSampleCreate(app))
		se.Router.PUT("/samples/{id}", handlers.HandleSampleUpdate(app))
		se.Router.DELETE("/samples/{id}", handlers.HandleSampleDelete(app))

		// ── CAD designs ──────────────────────────────────────────
		se.Router.GET("/cad-designs", handlers.HandleCADDesignList(app))
		se.Router.POST("/cad-designs", handlers.HandleCADDesignCreate(app))
		se.Router.POST("/cad-designs/{id}/decide", handlers.HandleCADDesignDecide(app))
		se.Router.DELETE("/cad-designs/{id}", handlers.HandleCADDesignDelete(app))

		// ── Fabric bookings ──────────────────────────────────────
		se.Router.GET("/fabric-bookings", handlers.HandleFabricBookingList(app))
		se.Router.POST("/fabric-bookings", handlers.HandleFabricBookingCreate(app))
		se.Router.PATCH("/fabric-bookings/{id}", handlers.HandleFabricBookingUpdateStatus(app))
		se.Router.DELETE("/fabric-bookings/{id}", handlers.HandleFabricBookingDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
