package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"relawanku_backend/internals/configs"
	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/records/controller"
	"relawanku_backend/internals/features/attendance/records/repository"
	"relawanku_backend/internals/features/attendance/records/service"
	"relawanku_backend/internals/middlewares"
)

func policyFromConfig() service.TimePolicy {
	return service.TimePolicy{
		CheckInLead:    configs.CheckInLead(),
		LateGrace:      configs.LateGrace(),
		EarlyLeaveGate: configs.EarlyLeaveGate(),
	}
}

func newRecordController(db *gorm.DB, log *zap.Logger) *controller.RecordController {
	repo := repository.NewRecordRepository(db)
	dir := activities.NewGormDirectory(db)
	svc := service.NewRecordService(repo, dir, policyFromConfig(), log)
	return controller.NewRecordController(svc)
}

// RecordUserRoutes: check-in/check-out mandiri + riwayat kehadiran.
func RecordUserRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newRecordController(db, log)

	// Limiter per user, check-in bukan endpoint untuk di-spam.
	r.Post("/activities/:id/check-in", middlewares.CheckInRateLimiter(), ctrl.CheckIn)
	r.Post("/activities/:id/check-out", middlewares.CheckInRateLimiter(), ctrl.CheckOut)
	r.Get("/activities/:id/check-in/eligibility", ctrl.CheckInEligibility)

	r.Get("/activities/:id/attendance", ctrl.ListForActivity)
	r.Get("/users/:id/attendance", ctrl.ListForUser)
}

// RecordAdminRoutes: koreksi manual oleh koordinator ke atas.
func RecordAdminRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newRecordController(db, log)

	r.Post("/activities/:id/absences/:user_id", ctrl.MarkAbsence)
	r.Post("/activities/:id/no-shows", ctrl.MarkNoShows)
}
