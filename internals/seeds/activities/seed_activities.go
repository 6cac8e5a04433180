package activities

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Struktur sesuai kolom tabel activities milik Activity Directory.
type ActivitySeed struct {
	ActivityTitle     string `json:"activity_title"`
	ActivityStatus    string `json:"activity_status"`
	ActivityStartTime string `json:"activity_start_time"` // RFC3339
	ActivityEndTime   string `json:"activity_end_time"`
	ActivityLocation  string `json:"activity_location"`
	ActivityIsOnline  bool   `json:"activity_is_online"`
	Participants      int    `json:"participants"` // jumlah relawan dummy di roster
}

// SeedActivitiesFromJSON mengisi activities + activity_participants
// untuk lingkungan dev. Judul dipakai sebagai kunci idempotensi.
func SeedActivitiesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seeds []ActivitySeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, s := range seeds {
		var n int64
		if err := db.Table("activities").Where("activity_title = ?", s.ActivityTitle).Count(&n).Error; err == nil && n > 0 {
			log.Printf("ℹ️ Kegiatan %q sudah ada, lewati...", s.ActivityTitle)
			continue
		}

		start, err := time.Parse(time.RFC3339, s.ActivityStartTime)
		if err != nil {
			log.Fatalf("❌ start_time %q tidak valid: %v", s.ActivityStartTime, err)
		}
		end, err := time.Parse(time.RFC3339, s.ActivityEndTime)
		if err != nil {
			log.Fatalf("❌ end_time %q tidak valid: %v", s.ActivityEndTime, err)
		}

		activityID := uuid.New()
		err = db.Table("activities").Create(map[string]interface{}{
			"activity_id":            activityID,
			"activity_title":         s.ActivityTitle,
			"activity_status":        s.ActivityStatus,
			"activity_start_time":    start,
			"activity_end_time":      end,
			"activity_location":      s.ActivityLocation,
			"activity_is_online":     s.ActivityIsOnline,
			"activity_present_count": 0,
		}).Error
		if err != nil {
			log.Printf("❌ Gagal insert kegiatan %q: %v", s.ActivityTitle, err)
			continue
		}

		for i := 0; i < s.Participants; i++ {
			err := db.Table("activity_participants").Create(map[string]interface{}{
				"activity_participant_activity_id": activityID,
				"activity_participant_user_id":     uuid.New(),
				"activity_participant_role":        "volunteer",
			}).Error
			if err != nil {
				log.Printf("❌ Gagal insert roster untuk %q: %v", s.ActivityTitle, err)
			}
		}
		log.Printf("✅ Berhasil insert kegiatan %q (%d relawan)", s.ActivityTitle, s.Participants)
	}
}
