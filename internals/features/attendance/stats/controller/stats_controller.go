package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/stats/dto"
	"relawanku_backend/internals/features/attendance/stats/service"
	helper "relawanku_backend/internals/helpers"
)

type StatsController struct {
	Frequency *service.FrequencyService
	Ranking   *service.RankingService
	Validate  *validator.Validate
}

func NewStatsController(freq *service.FrequencyService, rank *service.RankingService) *StatsController {
	return &StatsController{Frequency: freq, Ranking: rank, Validate: validator.New()}
}

/* ===================== FREQUENCY ===================== */
// GET /users/:id/attendance/frequency
func (ctrl *StatsController) UserFrequency(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.FrequencyRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	stats, err := ctrl.Frequency.UserFrequency(c.UserContext(), userID, req.ToRangeFilter())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", stats)
}

// GET /activities/:id/attendance/frequency
func (ctrl *StatsController) ActivityFrequency(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	stats, err := ctrl.Frequency.ActivityFrequency(c.UserContext(), activityID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromActivityStats(stats))
}

// GET /users/:id/attendance/by-period
func (ctrl *StatsController) ByPeriod(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.ByPeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	buckets, err := ctrl.Frequency.ByPeriod(c.UserContext(), userID, req.GroupBy, req.ToRangeFilter())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", buckets)
}

/* ===================== RANKING & ALERTS ===================== */
// GET /attendance/ranking
func (ctrl *StatsController) RankingList(c *fiber.Ctx) error {
	var req dto.RankingRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	entries, err := ctrl.Ranking.Ranking(c.UserContext(), req.ToRangeFilter(), limit)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", entries)
}

// GET /users/:id/attendance/alerts
func (ctrl *StatsController) Alerts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.AlertsRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	alerts, err := ctrl.Ranking.Alerts(c.UserContext(), userID, service.AlertOptions{
		Days:              req.Days,
		MinAttendanceRate: req.MinAttendanceRate,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", alerts)
}
