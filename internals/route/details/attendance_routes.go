package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	confirmationRoute "relawanku_backend/internals/features/attendance/confirmations/route"
	recordRoute "relawanku_backend/internals/features/attendance/records/route"
	reportRoute "relawanku_backend/internals/features/attendance/reports/route"
	statsRoute "relawanku_backend/internals/features/attendance/stats/route"
)

// AttendanceUserRoutes: semua endpoint self-service relawan
// (RSVP, check-in/out, riwayat, agregasi, baca snapshot).
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	confirmationRoute.ConfirmationUserRoutes(r, db, log)
	recordRoute.RecordUserRoutes(r, db, log)
	statsRoute.StatsUserRoutes(r, db)
	reportRoute.ReportUserRoutes(r, db, log)
}

// AttendanceAdminRoutes: operasi koordinator ke atas
// (stats RSVP, reminder, koreksi absen, sweep no-show, generate report).
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	confirmationRoute.ConfirmationAdminRoutes(r, db, log)
	recordRoute.RecordAdminRoutes(r, db, log)
	reportRoute.ReportAdminRoutes(r, db, log)
}
