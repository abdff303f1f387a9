package dto

import "ledger-engine/internal/models"

// RegisterDeviceRequest trusts a new approval device. PublicKey is an RSA
// public key in PEM or base64 DER form.
type RegisterDeviceRequest struct {
	Label     string `json:"label" validate:"max=100"`
	PublicKey string `json:"public_key" validate:"required,max=4096"`
}

type DeviceListResponse struct {
	Devices []models.MobileDevice `json:"devices"`
}
