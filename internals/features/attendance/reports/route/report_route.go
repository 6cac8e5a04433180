package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/reports/controller"
	"relawanku_backend/internals/features/attendance/reports/repository"
	"relawanku_backend/internals/features/attendance/reports/service"
	statsrepo "relawanku_backend/internals/features/attendance/stats/repository"
)

func newReportController(db *gorm.DB, log *zap.Logger) *controller.ReportController {
	repo := repository.NewReportRepository(db)
	reader := statsrepo.NewStatsReader(db)
	dir := activities.NewGormDirectory(db)
	svc := service.NewReportService(repo, reader, dir, log)
	return controller.NewReportController(svc)
}

// ReportUserRoutes: snapshot bisa dibaca semua user login; hapus tetap
// dicek kepemilikan di service.
func ReportUserRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newReportController(db, log)

	r.Get("/activities/:id/reports", ctrl.ListForActivity)
	r.Get("/reports/:report_id", ctrl.GetByID)
	r.Delete("/reports/:report_id", ctrl.Delete)
}

// ReportAdminRoutes: generate snapshot, koordinator ke atas.
func ReportAdminRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newReportController(db, log)

	r.Post("/activities/:id/reports", ctrl.Generate)
}
