package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/records/dto"
	"relawanku_backend/internals/features/attendance/records/repository"
	"relawanku_backend/internals/features/attendance/records/service"
	helper "relawanku_backend/internals/helpers"
)

type RecordController struct {
	Service  *service.RecordService
	Validate *validator.Validate
}

func NewRecordController(svc *service.RecordService) *RecordController {
	return &RecordController{Service: svc, Validate: validator.New()}
}

/* ===================== CHECK-IN ===================== */
// POST /activities/:id/check-in
func (ctrl *RecordController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl, err := ctrl.Service.CheckIn(c.UserContext(), activityID, userID, service.CheckInData{
		Location:   req.Location,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		DeviceInfo: req.DeviceInfo,
		Notes:      req.Notes,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Checked in", dto.FromRecordModel(*mdl))
}

/* ===================== CHECK-OUT ===================== */
// POST /activities/:id/check-out
func (ctrl *RecordController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.CheckOutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl, err := ctrl.Service.CheckOut(c.UserContext(), activityID, userID, req.Notes)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Checked out", dto.FromRecordModel(*mdl))
}

/* ===================== ELIGIBILITY ===================== */
// GET /activities/:id/check-in/eligibility
func (ctrl *RecordController) CheckInEligibility(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	elig, err := ctrl.Service.CanCheckIn(c.UserContext(), activityID, userID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", elig)
}

/* ===================== ABSENCE (privileged) ===================== */
// POST /activities/:id/absences/:user_id
func (ctrl *RecordController) MarkAbsence(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.MarkAbsenceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl, err := ctrl.Service.MarkAbsence(c.UserContext(), activityID, userID, req.Notes, req.IsExcused)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Absence marked", dto.FromRecordModel(*mdl))
}

/* ===================== NO-SHOW SWEEP (privileged) ===================== */
// POST /activities/:id/no-shows
func (ctrl *RecordController) MarkNoShows(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	n, err := ctrl.Service.MarkNoShows(c.UserContext(), activityID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "No-shows marked", dto.NoShowSweepResponse{Marked: n})
}

/* ===================== LISTS ===================== */
// GET /activities/:id/attendance
func (ctrl *RecordController) ListForActivity(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	req, paging, err := ctrl.parseListQuery(c)
	if err != nil {
		return err
	}
	start, end := req.ParseDateRange()
	f := repository.ListFilter{Status: req.Status, StartDate: start, EndDate: end}

	rows, total, err := ctrl.Service.ListForActivity(c.UserContext(), activityID, f, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromRecordModels(rows), &pagination)
}

// GET /users/:id/attendance
func (ctrl *RecordController) ListForUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	req, paging, err := ctrl.parseListQuery(c)
	if err != nil {
		return err
	}
	start, end := req.ParseDateRange()
	f := repository.ListFilter{Status: req.Status, StartDate: start, EndDate: end}

	rows, total, err := ctrl.Service.ListForUser(c.UserContext(), userID, f, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromRecordModels(rows), &pagination)
}

func (ctrl *RecordController) parseListQuery(c *fiber.Ctx) (dto.ListRecordsRequest, helper.Paging, error) {
	var req dto.ListRecordsRequest
	if err := c.QueryParser(&req); err != nil {
		return req, helper.Paging{}, helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return req, helper.Paging{}, helper.ValidationError(c, err)
	}
	return req, helper.ResolvePaging(c, 25, 200), nil
}
