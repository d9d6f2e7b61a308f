package dto

type NeotrackFilter struct {
	Search   string `form:"search"`
	Customer string `form:"customer"`
	Status   string `form:"status" validate:"omitempty,oneof=inactif actif erreur"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type CreateNeotrackRequest struct {
	IMEI       string  `json:"imei"       validate:"required,numeric,len=15"`
	SimNumber  *string `json:"simNumber"`
	DeviceType *string `json:"deviceType"`
	Customer   *string `json:"customer" validate:"omitempty,uuid"`
	Car        *string `json:"car"      validate:"omitempty,uuid"`
}

type UpdateNeotrackRequest struct {
	SimNumber  *string `json:"simNumber"`
	DeviceType *string `json:"deviceType"`
	Customer   *string `json:"customer" validate:"omitempty,uuid"`
	Car        *string `json:"car"      validate:"omitempty,uuid"`
}

type NeotrackResponse struct {
	ID         string  `json:"id"`
	IMEI       string  `json:"imei"`
	SimNumber  *string `json:"simNumber,omitempty"`
	DeviceType *string `json:"deviceType,omitempty"`
	Customer   *string `json:"customer,omitempty"`
	Car        *string `json:"car,omitempty"`
	Status     string  `json:"status"`
	LastSeenAt *string `json:"lastSeenAt,omitempty"`
	Deleted    bool    `json:"deleted,omitempty"`
}

type NeotrackListResponse struct {
	Data  []NeotrackResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// NeotrackPositionResponse is relayed from the tracking platform.
type NeotrackPositionResponse struct {
	IMEI      string  `json:"imei"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Timestamp string  `json:"timestamp"`
}
