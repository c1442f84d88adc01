package seed

import (
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var defaultLocations = []string{"Fridge", "Freezer", "Pantry"}

// EnsureDefaultLocations inserts the default kitchen locations on first run.
// Existing stores are left untouched.
func EnsureDefaultLocations(conn *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := conn.Table("locations").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultLocations {
		if err := conn.Exec(
			`INSERT INTO locations (id, name) VALUES (?, ?)`,
			node.Generate().Int64(),
			name,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
