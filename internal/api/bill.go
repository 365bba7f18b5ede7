package api

// swagger:model api.GenerateBillRequest
type GenerateBillRequest struct {
	UserID int `json:"userId" validate:"required,min=1" example:"1"`
	Month  int `json:"month" validate:"required,min=1,max=12" example:"3"`
	Year   int `json:"year" validate:"required,min=2000,max=9999" example:"2025"`
}

// swagger:model api.GenerateAllBillsRequest
type GenerateAllBillsRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12" example:"3"`
	Year  int `json:"year" validate:"required,min=2000,max=9999" example:"2025"`
}

// swagger:model api.GenerateAllBillsResponse
type GenerateAllBillsResponse struct {
	Generated int `json:"generated" example:"40"`
	Skipped   int `json:"skipped" example:"2"`
	Failed    int `json:"failed" example:"0"`
}
