// Package collections programmatically creates and seeds the
// application's PocketBase collections.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the cost_sheets, tna_schedules,
// tna_tasks, samples, cad_designs, fabric_bookings and settings
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "cost_sheets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "style", Required: true})
		c.Fields.Add(&core.TextField{Name: "item", Required: false})
		c.Fields.Add(&core.TextField{Name: "item_group", Required: false})
		c.Fields.Add(&core.TextField{Name: "size", Required: false})
		c.Fields.Add(&core.TextField{Name: "fabric_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "gsm", Required: false})
		c.Fields.Add(&core.TextField{Name: "color", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		// Row-set envelopes, full-replaced on every update.
		c.Fields.Add(&core.JSONField{Name: "cad_consumption"})
		c.Fields.Add(&core.JSONField{Name: "fabric_cost"})
		c.Fields.Add(&core.JSONField{Name: "trims_accessories"})
		c.Fields.Add(&core.JSONField{Name: "others"})
		// The only persisted summary fields; the chain is re-derived
		// on every read.
		c.Fields.Add(&core.NumberField{Name: "factory_cm", Required: false})
		c.Fields.Add(&core.NumberField{Name: "commercial_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_percent", Required: false})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	tnaSchedules := ensureCollection(app, "tna_schedules", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "style", Required: true})
		c.Fields.Add(&core.TextField{Name: "buyer", Required: false})
		c.Fields.Add(&core.TextField{Name: "order_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "order_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "shipment_date", Required: true})
		c.Fields.Add(&core.NumberField{Name: "order_qty", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "tna_tasks", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "schedule",
			Required:      true,
			CollectionId:  tnaSchedules.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "plan_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "actual_date", Required: false})
	})

	ensureCollection(app, "samples", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "style", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "sample_type",
			Required:  true,
			Values:    []string{"proto", "fit", "pp", "shipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "sent_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "approval_date", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "comments", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "cad_designs", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "style", Required: true})
		c.Fields.Add(&core.TextField{Name: "design_name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "approved_by", Required: false})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "fabric_bookings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "style", Required: true})
		c.Fields.Add(&core.TextField{Name: "fabric_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "gsm", Required: false})
		c.Fields.Add(&core.TextField{Name: "color", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity_kg", Required: true})
		c.Fields.Add(&core.TextField{Name: "booking_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "delivery_date", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"booked", "in_house", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "factory_cm", Required: false})
		c.Fields.Add(&core.NumberField{Name: "commercial_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adjustment_percent", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
