package models

// Material is a static catalog entry. Read-only from this core's
// perspective; the seed data lives in the migrations.
type Material struct {
	Name      string  `db:"name" json:"name"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
	Unit      string  `db:"unit" json:"unit"`
}
