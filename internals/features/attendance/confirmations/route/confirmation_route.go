package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"relawanku_backend/internals/configs"
	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/confirmations/controller"
	"relawanku_backend/internals/features/attendance/confirmations/repository"
	"relawanku_backend/internals/features/attendance/confirmations/service"
)

func newConfirmationController(db *gorm.DB, log *zap.Logger) *controller.ConfirmationController {
	repo := repository.NewConfirmationRepository(db)
	dir := activities.NewGormDirectory(db)
	svc := service.NewConfirmationService(repo, dir, &service.ZapNotifier{Log: log}, log, configs.ReminderDispatchLimit)
	return controller.NewConfirmationController(svc)
}

// ConfirmationUserRoutes: relawan mengelola RSVP-nya sendiri.
func ConfirmationUserRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newConfirmationController(db, log)

	r.Post("/activities/:id/confirmation", ctrl.SetConfirmation)
	r.Get("/activities/:id/confirmations", ctrl.ListForActivity)
	r.Get("/users/me/confirmations", ctrl.ListForUser)
}

// ConfirmationAdminRoutes: statistik & reminder, khusus koordinator ke atas.
func ConfirmationAdminRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := newConfirmationController(db, log)

	r.Get("/activities/:id/confirmations/stats", ctrl.Stats)
	r.Post("/activities/:id/confirmations/remind", ctrl.SendReminders)
}
