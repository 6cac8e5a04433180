package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/confirmations/dto"
	"relawanku_backend/internals/features/attendance/confirmations/repository"
	"relawanku_backend/internals/features/attendance/confirmations/service"
	"relawanku_backend/internals/features/attendance/domain"
	helper "relawanku_backend/internals/helpers"
)

type ConfirmationController struct {
	Service  *service.ConfirmationService
	Validate *validator.Validate
}

func NewConfirmationController(svc *service.ConfirmationService) *ConfirmationController {
	return &ConfirmationController{Service: svc, Validate: validator.New()}
}

/* ===================== SET (upsert RSVP) ===================== */
// POST /activities/:id/confirmation
func (ctrl *ConfirmationController) SetConfirmation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.SetConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl, err := ctrl.Service.SetConfirmation(c.UserContext(), activityID, userID, req.Status, req.Notes)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	// Upsert: baris lama ditimpa, baris baru dibuat; dua-duanya "set".
	return helper.JsonUpdated(c, "Confirmation saved", dto.FromConfirmationModel(*mdl))
}

/* ===================== LIST (per activity) ===================== */
// GET /activities/:id/confirmations
func (ctrl *ConfirmationController) ListForActivity(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.ListActivityConfirmationsRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 200)
	rows, total, err := ctrl.Service.ListForActivity(c.UserContext(), activityID, req.Status, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromConfirmationModels(rows), &pagination)
}

/* ===================== LIST (own, joined with activities) ===================== */
// GET /users/me/confirmations
func (ctrl *ConfirmationController) ListForUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ListUserConfirmationsRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	af := repository.ActivityFilter{ActivityStatus: req.ActivityStatus}
	if req.StartDate != nil {
		t, _ := time.Parse("2006-01-02", *req.StartDate)
		af.StartDate = &t
	}
	if req.EndDate != nil {
		t, _ := time.Parse("2006-01-02", *req.EndDate)
		end := t.Add(24*time.Hour - time.Nanosecond)
		af.EndDate = &end
	}

	paging := helper.ResolvePaging(c, 25, 200)
	rows, total, err := ctrl.Service.ListForUser(c.UserContext(), userID, req.Status, af, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	out := make([]dto.UserConfirmationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserConfirmationResponse{
			ConfirmationResponse: dto.FromConfirmationModel(r.Confirmation),
			ActivityTitle:        r.ActivityTitle,
			ActivityStatus:       r.ActivityStatus,
			ActivityStartTime:    r.ActivityStartTime,
			ActivityEndTime:      r.ActivityEndTime,
		})
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", out, &pagination)
}

/* ===================== STATS ===================== */
// GET /activities/:id/confirmations/stats
func (ctrl *ConfirmationController) Stats(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	counts, err := ctrl.Service.Stats(c.UserContext(), activityID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	resp := dto.ConfirmationStatsResponse{
		Pending:   counts[domain.ConfirmationPending],
		Confirmed: counts[domain.ConfirmationConfirmed],
		Declined:  counts[domain.ConfirmationDeclined],
		Maybe:     counts[domain.ConfirmationMaybe],
	}
	resp.Total = resp.Pending + resp.Confirmed + resp.Declined + resp.Maybe
	return helper.JsonOK(c, "", resp)
}

/* ===================== REMINDERS ===================== */
// POST /activities/:id/confirmations/remind
func (ctrl *ConfirmationController) SendReminders(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.SendRemindersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	n, err := ctrl.Service.SendReminders(c.UserContext(), activityID, req.UserIDs)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Reminders dispatched", dto.RemindersDispatchedResponse{Dispatched: n})
}
