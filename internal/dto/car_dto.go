package dto

// ─── Cars ────────────────────────────────────────────────────────────────────

type CarFilter struct {
	Customer string `form:"customer"` // customer UUID; empty = all
	Brand    string `form:"brand"`    // brand UUID; empty = all
	Search   string `form:"search"`   // matches plate, model name
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type CreateCarRequest struct {
	BrandID    *string `json:"brandId"    validate:"omitempty,uuid"`
	ModelName  string  `json:"modelName"  validate:"required"`
	Plate      string  `json:"plate"      validate:"required"`
	VIN        *string `json:"vin"`
	Year       *int    `json:"year"       validate:"omitempty,min=1950,max=2100"`
	CustomerID *string `json:"customerId" validate:"omitempty,uuid"`
}

type UpdateCarRequest struct {
	BrandID   *string `json:"brandId"   validate:"omitempty,uuid"`
	ModelName *string `json:"modelName"`
	Plate     *string `json:"plate"`
	VIN       *string `json:"vin"`
	Year      *int    `json:"year"      validate:"omitempty,min=1950,max=2100"`
}

type AssociateCarRequest struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
}

type CarResponse struct {
	ID        string  `json:"id"`
	BrandID   *string `json:"brandId,omitempty"`
	BrandName string  `json:"brandName,omitempty"`
	ModelName string  `json:"modelName"`
	Plate     string  `json:"plate"`
	VIN       *string `json:"vin,omitempty"`
	Year      *int    `json:"year,omitempty"`
	Customer  *string `json:"customer,omitempty"` // customer UUID
	CreatedAt string  `json:"createdAt"`
	Deleted   bool    `json:"deleted"`
}

type CarListResponse struct {
	Data  []CarResponse `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ─── Car brands ──────────────────────────────────────────────────────────────

type CarBrandFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=200"`
}

// CreateCarBrandRequest carries the brand and its model names. Blank model
// names are dropped on write, matching what the dashboard always sent.
type CreateCarBrandRequest struct {
	Name       string   `json:"brand_name"  validate:"required"`
	ModelNames []string `json:"model_names"`
}

type UpdateCarBrandRequest struct {
	Name       *string  `json:"brand_name"`
	ModelNames []string `json:"model_names"`
}

type CarBrandResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"brand_name"`
	ModelNames []string `json:"model_names"`
	CreatedAt  string   `json:"createdAt"`
	Deleted    bool     `json:"deleted"`
}

type CarBrandListResponse struct {
	Data  []CarBrandResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
