package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleetmanagement/fleet-api/internal/api/metrics"
	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

// FleetHandler serves asset types, service centers and service appointments.
type FleetHandler struct {
	service ports.FleetService
}

func NewFleetHandler(service ports.FleetService) *FleetHandler {
	return &FleetHandler{service: service}
}

// --- Request types ---

type appointmentRequest struct {
	AssetTypeID     int64     `json:"asset_type_id" validate:"required,gt=0"`
	ServiceCenterID int64     `json:"service_center_id" validate:"required,gt=0"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	AssetMake       string    `json:"asset_make,omitempty" validate:"max=100"`
	AssetYear       int       `json:"asset_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Notes           string    `json:"notes,omitempty" validate:"max=1000"`
}

func (r appointmentRequest) toInput() ports.AppointmentInput {
	return ports.AppointmentInput{
		AssetTypeID:     r.AssetTypeID,
		ServiceCenterID: r.ServiceCenterID,
		AppointmentDate: r.AppointmentDate,
		AssetMake:       r.AssetMake,
		AssetYear:       r.AssetYear,
		Notes:           r.Notes,
	}
}

// ListAssetTypes handles GET /api/asset-types.
//
// @Summary      List asset types
// @Tags         asset-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AssetType
// @Failure      401  {object}  map[string]string
// @Router       /api/asset-types [get]
func (h *FleetHandler) ListAssetTypes(c echo.Context) error {
	items, err := h.service.ListAssetTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetAssetType handles GET /api/asset-types/:id.
//
// @Summary      Get an asset type
// @Tags         asset-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Asset type id"
// @Success      200  {object}  domain.AssetType
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/asset-types/{id} [get]
func (h *FleetHandler) GetAssetType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	at, err := h.service.GetAssetType(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, at)
}

// ListServiceCenters handles GET /api/service-centers. Admin only.
//
// @Summary      List service centers
// @Tags         service-centers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ServiceCenter
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/service-centers [get]
func (h *FleetHandler) ListServiceCenters(c echo.Context) error {
	items, err := h.service.ListServiceCenters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetServiceCenter handles GET /api/service-centers/:id. Admin only.
//
// @Summary      Get a service center
// @Tags         service-centers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Service center id"
// @Success      200  {object}  domain.ServiceCenter
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-centers/{id} [get]
func (h *FleetHandler) GetServiceCenter(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	sc, err := h.service.GetServiceCenter(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc)
}

// ListAppointments handles GET /api/service-appointments.
//
// @Summary      List service appointments
// @Tags         service-appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ServiceAppointment
// @Failure      401  {object}  map[string]string
// @Router       /api/service-appointments [get]
func (h *FleetHandler) ListAppointments(c echo.Context) error {
	items, err := h.service.ListAppointments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetAppointment handles GET /api/service-appointments/:id.
//
// @Summary      Get a service appointment
// @Tags         service-appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {object}  domain.ServiceAppointment
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-appointments/{id} [get]
func (h *FleetHandler) GetAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.service.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// CreateAppointment handles POST /api/service-appointments.
//
// @Summary      Create a service appointment
// @Tags         service-appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      appointmentRequest  true  "Appointment"
// @Success      201   {object}  domain.ServiceAppointment
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/service-appointments [post]
func (h *FleetHandler) CreateAppointment(c echo.Context) error {
	var req appointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.CreateAppointment(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.AppointmentsWrittenTotal.WithLabelValues("create").Inc()
	c.Response().Header().Set(echo.HeaderLocation, appointmentLocation(a))
	return c.JSON(http.StatusCreated, a)
}

// UpdateAppointment handles PUT /api/service-appointments/:id.
//
// @Summary      Replace a service appointment
// @Tags         service-appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Appointment id"
// @Param        body  body      appointmentRequest  true  "Appointment"
// @Success      200   {object}  domain.ServiceAppointment
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/service-appointments/{id} [put]
func (h *FleetHandler) UpdateAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req appointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	a, err := h.service.UpdateAppointment(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	metrics.AppointmentsWrittenTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, a)
}

// DeleteAppointment handles DELETE /api/service-appointments/:id.
//
// @Summary      Delete a service appointment
// @Tags         service-appointments
// @Security     BearerAuth
// @Param        id   path  int  true  "Appointment id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/service-appointments/{id} [delete]
func (h *FleetHandler) DeleteAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAppointment(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.AppointmentsWrittenTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func appointmentLocation(a *domain.ServiceAppointment) string {
	return "/api/service-appointments/" + strconv.FormatInt(a.ID, 10)
}
