package seeds

import (
	"gorm.io/gorm"

	activities "relawanku_backend/internals/seeds/activities"
	confirmations "relawanku_backend/internals/seeds/confirmations"
)

// RunAllSeeds mengisi data dev: kegiatan + roster dulu, baru RSVP
// pending untuk setiap anggota roster. Hanya jalan kalau SEED_ON_BOOT=true.
func RunAllSeeds(db *gorm.DB) {
	activities.SeedActivitiesFromJSON(db, "internals/seeds/activities/data_activities.json")
	confirmations.SeedPendingConfirmations(db)
}
