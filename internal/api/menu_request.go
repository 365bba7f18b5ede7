package api

// swagger:model api.MenuRequest
type MenuRequest struct {
	Day       string `json:"day" form:"day" validate:"required" example:"Monday"`
	Breakfast string `json:"breakfast" form:"breakfast" validate:"required" example:"Idli, Sambar"`
	Lunch     string `json:"lunch" form:"lunch" validate:"required" example:"Rice, Dal, Sabzi"`
	Dinner    string `json:"dinner" form:"dinner" validate:"required" example:"Roti, Paneer"`
}
