package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"merchtrack/services"
)

// MigrateLegacyEnvelopes rewrites cost sheet row-set fields persisted in
// legacy shapes (bare row arrays or {json: {...}} wrappers) into the
// canonical envelope shape, recomputing subtotals along the way.
// Safe to call on every startup -- records already in canonical shape
// are left untouched.
func MigrateLegacyEnvelopes(app *pocketbase.PocketBase) error {
	sheets, err := app.FindRecordsByFilter("cost_sheets", "", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query cost_sheets: %w", err)
	}

	migrated := 0
	for _, sheet := range sheets {
		changed := false

		for _, field := range []struct {
			name string
			kind services.TableKind
		}{
			{"cad_consumption", services.TableCAD},
			{"trims_accessories", services.TableTrims},
			{"others", services.TableOthers},
		} {
			raw := sheet.GetString(field.name)
			if raw == "" || isCanonicalEnvelope(raw) {
				continue
			}

			var data any
			if err := json.Unmarshal([]byte(raw), &data); err != nil {
				log.Printf("migrate: sheet %s field %s is unreadable: %v", sheet.Id, field.name, err)
				continue
			}
			env, err := services.NormalizeTable(data, field.kind)
			if err != nil {
				log.Printf("migrate: sheet %s field %s: %v", sheet.Id, field.name, err)
				continue
			}
			out, err := json.Marshal(env)
			if err != nil {
				log.Printf("migrate: sheet %s field %s: %v", sheet.Id, field.name, err)
				continue
			}
			sheet.Set(field.name, string(out))
			changed = true
		}

		if !changed {
			continue
		}
		if err := app.Save(sheet); err != nil {
			log.Printf("migrate: could not save sheet %s: %v", sheet.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: normalized %d cost sheet(s) with legacy row-set shapes", migrated)
	}
	return nil
}

// isCanonicalEnvelope reports whether a stored field already is a JSON
// object with a "rows" key and no legacy "json" wrapper.
func isCanonicalEnvelope(raw string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return false
	}
	if _, legacy := obj["json"]; legacy {
		return false
	}
	_, ok := obj["rows"]
	return ok
}
