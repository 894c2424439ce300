package migrations

import (
	"gorm.io/gorm"
)

// Readings imported from the pre-users-table database reference telegram ids
// that have no user row. Backfill placeholder users so foreign keys hold;
// names can be fixed later with the usertool CLI.
func init() {
	Register("001_backfill_users",
		func(db *gorm.DB) error {
			return db.Exec(`
				INSERT INTO users (telegram_id, name, is_admin, registered_at)
				SELECT DISTINCT r.user_id, 'User_' || r.user_id, FALSE, NOW()
				FROM glucose_readings r
				WHERE NOT EXISTS (
					SELECT 1 FROM users u WHERE u.telegram_id = r.user_id
				)`).Error
		},
		func(db *gorm.DB) error {
			return db.Exec(`DELETE FROM users WHERE name LIKE 'User\_%' AND is_admin = FALSE`).Error
		},
	)
}
