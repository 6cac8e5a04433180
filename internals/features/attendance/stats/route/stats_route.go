package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"relawanku_backend/internals/features/attendance/stats/controller"
	"relawanku_backend/internals/features/attendance/stats/repository"
	"relawanku_backend/internals/features/attendance/stats/service"
)

// StatsUserRoutes: agregasi read-only, cukup login.
func StatsUserRoutes(r fiber.Router, db *gorm.DB) {
	reader := repository.NewStatsReader(db)
	ctrl := controller.NewStatsController(
		service.NewFrequencyService(reader),
		service.NewRankingService(reader),
	)

	r.Get("/users/:id/attendance/frequency", ctrl.UserFrequency)
	r.Get("/activities/:id/attendance/frequency", ctrl.ActivityFrequency)
	r.Get("/users/:id/attendance/by-period", ctrl.ByPeriod)
	r.Get("/attendance/ranking", ctrl.RankingList)
	r.Get("/users/:id/attendance/alerts", ctrl.Alerts)
}
