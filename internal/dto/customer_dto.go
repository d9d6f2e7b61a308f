package dto

// CustomerFilter is bound from the query string of GET /v1/customers.
type CustomerFilter struct {
	Search string `form:"search"` // matches fname, lname, cin, phone
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type CreateCustomerRequest struct {
	Fname       string  `json:"fname"       validate:"required"`
	Lname       string  `json:"lname"       validate:"required"`
	CIN         string  `json:"cin"         validate:"required,min=6"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,min=8"`
	Email       *string `json:"email"       validate:"omitempty,email"`
	Address     *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Fname       *string `json:"fname"`
	Lname       *string `json:"lname"`
	CIN         *string `json:"cin"         validate:"omitempty,min=6"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=8"`
	Email       *string `json:"email"       validate:"omitempty,email"`
	Address     *string `json:"address"`
}

type CustomerResponse struct {
	ID          string  `json:"id"`
	Fname       string  `json:"fname"`
	Lname       string  `json:"lname"`
	CIN         string  `json:"cin"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	Deleted     bool    `json:"deleted"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
