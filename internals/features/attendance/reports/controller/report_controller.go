package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/reports/dto"
	"relawanku_backend/internals/features/attendance/reports/service"
	helper "relawanku_backend/internals/helpers"
)

type ReportController struct {
	Service  *service.ReportService
	Validate *validator.Validate
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc, Validate: validator.New()}
}

/* ===================== GENERATE ===================== */
// POST /activities/:id/reports
func (ctrl *ReportController) Generate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ReportType == domain.ReportCustom && req.GroupBy == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "group_by is required for custom reports")
	}

	mdl, err := ctrl.Service.Generate(c.UserContext(), activityID, userID, req.ToInput())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Report generated", dto.FromReportModel(*mdl))
}

/* ===================== LIST ===================== */
// GET /activities/:id/reports
func (ctrl *ReportController) ListForActivity(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req dto.ListReportsRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Service.List(c.UserContext(), activityID, req.ReportType, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromReportModels(rows), &pagination)
}

/* ===================== DETAIL ===================== */
// GET /reports/:report_id
func (ctrl *ReportController) GetByID(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("report_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	mdl, err := ctrl.Service.Get(c.UserContext(), reportID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromReportModel(*mdl))
}

/* ===================== DELETE ===================== */
// DELETE /reports/:report_id — hanya pembuat snapshot.
func (ctrl *ReportController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reportID, err := uuid.Parse(c.Params("report_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	if err := ctrl.Service.Delete(c.UserContext(), reportID, userID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Report deleted", fiber.Map{"attendance_report_id": reportID})
}
