package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string

	// Attendance time-policy knobs. Adjustable per deployment via ENV,
	// resolved once at boot. Consumed by features/attendance/records.
	CheckInLeadMinutes    int
	LateGraceMinutes      int
	EarlyLeaveMinutes     int
	ReminderDispatchLimit int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env tidak ditemukan, pakai ENV sistem")
		} else {
			log.Println("✅ .env berhasil dimuat")
		}
	} else {
		log.Println("🚀 Running in Railway, pakai ENV sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	CheckInLeadMinutes = GetEnvInt("ATTENDANCE_CHECKIN_LEAD_MINUTES", 30)
	LateGraceMinutes = GetEnvInt("ATTENDANCE_LATE_GRACE_MINUTES", 15)
	EarlyLeaveMinutes = GetEnvInt("ATTENDANCE_EARLY_LEAVE_MINUTES", 30)
	ReminderDispatchLimit = GetEnvInt("ATTENDANCE_REMINDER_DISPATCH_LIMIT", 500)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("⚠️ %s=%q tidak valid, pakai default %d", key, v, def)
		return def
	}
	return n
}

// Durations as the attendance services consume them.
func CheckInLead() time.Duration    { return time.Duration(CheckInLeadMinutes) * time.Minute }
func LateGrace() time.Duration      { return time.Duration(LateGraceMinutes) * time.Minute }
func EarlyLeaveGate() time.Duration { return time.Duration(EarlyLeaveMinutes) * time.Minute }
