package handlers

import (
	"net/http"

	"ledger-engine/internal/dto"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/services"

	"github.com/labstack/echo/v4"
)

// DeviceHandler manages the caller's trusted approval devices
type DeviceHandler struct {
	deviceService services.DeviceServiceInterface
}

func NewDeviceHandler(deviceService services.DeviceServiceInterface) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// RegisterDevice trusts a new device. The previously active device, if any,
// is revoked.
// @Summary Register a mobile device
// @Tags Devices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterDeviceRequest true "Device public key"
// @Success 201 {object} models.MobileDevice
// @Failure 400 {object} errors.ErrorResponse "DEVICE_004 - Invalid public key"
// @Router /devices [post]
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.RegisterDeviceRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	device, err := h.deviceService.RegisterDevice(c.Request().Context(), actor, req.Label, req.PublicKey)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, device)
}

// @Router /devices [get]
func (h *DeviceHandler) ListDevices(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	devices, err := h.deviceService.ListDevices(c.Request().Context(), actor)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeviceListResponse{Devices: devices})
}

// @Router /devices/{deviceId} [delete]
func (h *DeviceHandler) RevokeDevice(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	deviceID, ok, err := parseUUIDParam(c, "deviceId")
	if !ok {
		return err
	}

	if err := h.deviceService.RevokeDevice(c.Request().Context(), actor, deviceID); err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Device revoked"})
}
