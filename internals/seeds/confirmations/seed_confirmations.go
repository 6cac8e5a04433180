package confirmations

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"relawanku_backend/internals/features/attendance/confirmations/model"
	"relawanku_backend/internals/features/attendance/domain"
)

// SeedPendingConfirmations membuat RSVP pending untuk setiap anggota
// roster yang belum punya baris konfirmasi. Aman dipanggil berulang
// (OnConflict DoNothing pada pasangan).
func SeedPendingConfirmations(db *gorm.DB) {
	type pair struct {
		ActivityID uuid.UUID `gorm:"column:activity_participant_activity_id"`
		UserID     uuid.UUID `gorm:"column:activity_participant_user_id"`
	}
	var pairs []pair
	if err := db.Table("activity_participants").Scan(&pairs).Error; err != nil {
		log.Fatalf("❌ Gagal membaca roster: %v", err)
	}
	if len(pairs) == 0 {
		log.Println("ℹ️ Roster kosong, tidak ada konfirmasi yang dibuat")
		return
	}

	mdls := make([]model.AttendanceConfirmationModel, 0, len(pairs))
	for _, p := range pairs {
		mdls = append(mdls, model.AttendanceConfirmationModel{
			AttendanceConfirmationActivityID: p.ActivityID,
			AttendanceConfirmationUserID:     p.UserID,
			AttendanceConfirmationStatus:     domain.ConfirmationPending,
		})
	}

	tx := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mdls)
	if tx.Error != nil {
		log.Fatalf("❌ Gagal insert konfirmasi: %v", tx.Error)
	}
	log.Printf("✅ %d konfirmasi pending dibuat (%d pasangan di roster)", tx.RowsAffected, len(pairs))
}
