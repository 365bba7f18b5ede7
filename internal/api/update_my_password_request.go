package api

// swagger:model api.UpdateMyPasswordRequest
type UpdateMyPasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required" example:"OldSecret123!"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6" example:"NewSecret456!"`
}
