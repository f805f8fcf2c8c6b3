package inventory

import "time"

// Purchase status values reported by the backend.
const (
	PurchasePending   = "PENDING"
	PurchaseReceived  = "RECEIVED"
	PurchaseCancelled = "CANCELLED"
	PurchaseReturned  = "RETURNED"
)

// Stock movement types.
const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
	MovementReturn     = "RETURN"
)

// Company is a trading company managed through the admin console.
type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	AreaID      int64     `json:"area_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Supplier is a stock supplier.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	AreaID    int64     `json:"area_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PurchaseItem is one ordered line of a purchase.
type PurchaseItem struct {
	VariantID int64   `json:"variant_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitCost  float64 `json:"unit_cost" validate:"gte=0"`
	LineTotal float64 `json:"line_total"`
}

// Purchase is a stock purchase from a supplier.
type Purchase struct {
	ID            int64          `json:"id"`
	SupplierID    int64          `json:"supplier_id"`
	InvoiceNumber string         `json:"invoice_number"`
	Status        string         `json:"status"`
	TotalCost     float64        `json:"total_cost"`
	Items         []PurchaseItem `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ReturnItem is one line of a purchase return.
type ReturnItem struct {
	VariantID    int64   `json:"variant_id" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	RefundAmount float64 `json:"refund_amount" validate:"gte=0"`
	Reason       string  `json:"reason,omitempty"`
}

// PurchaseReturn is a return of purchased stock back to a supplier.
type PurchaseReturn struct {
	ID          int64        `json:"id"`
	PurchaseID  int64        `json:"purchase_id"`
	Reason      string       `json:"reason"`
	Status      string       `json:"status"`
	TotalRefund float64      `json:"total_refund"`
	Items       []ReturnItem `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BatchItem is one line of a stock batch.
type BatchItem struct {
	VariantID int64 `json:"variant_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// Batch is a manufactured batch received through a purchase.
type Batch struct {
	ID              int64       `json:"id"`
	PurchaseID      int64       `json:"purchase_id"`
	BatchNumber     string      `json:"batch_number"`
	ManufactureDate *time.Time  `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time  `json:"expiry_date,omitempty"`
	Items           []BatchItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// StockMovement is one recorded stock change.
type StockMovement struct {
	ID        int64     `json:"id"`
	VariantID int64     `json:"variant_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	UnitCost  float64   `json:"unit_cost"`
	RefType   string    `json:"ref_type,omitempty"`
	RefID     int64     `json:"ref_id,omitempty"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockSummary is the aggregated stock position.
type StockSummary struct {
	TotalVariants int     `json:"total_variants"`
	TotalUnits    int     `json:"total_units"`
	TotalValue    float64 `json:"total_value"`
	LowStockCount int     `json:"low_stock_count"`
}

// CompanyRequest is the create/update body for a company.
type CompanyRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	AreaID  int64  `json:"area_id,omitempty"`
}

// SupplierRequest is the create/update body for a supplier.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	AreaID  int64  `json:"area_id,omitempty"`
}

// PurchaseRequest is the create body for a purchase.
type PurchaseRequest struct {
	SupplierID    int64          `json:"supplier_id" validate:"required"`
	InvoiceNumber string         `json:"invoice_number" validate:"required"`
	Items         []PurchaseItem `json:"items" validate:"required,min=1,dive"`
}

// ReturnRequest is the create body for a purchase return.
type ReturnRequest struct {
	PurchaseID int64        `json:"purchase_id" validate:"required"`
	Reason     string       `json:"reason" validate:"required"`
	Items      []ReturnItem `json:"items" validate:"required,min=1,dive"`
}

// BatchRequest is the create/update body for a batch.
type BatchRequest struct {
	PurchaseID      int64       `json:"purchase_id" validate:"required"`
	BatchNumber     string      `json:"batch_number" validate:"required"`
	ManufactureDate *time.Time  `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time  `json:"expiry_date,omitempty"`
	Items           []BatchItem `json:"items" validate:"required,min=1,dive"`
}

// AdjustmentRequest is the body of a manual stock adjustment.
type AdjustmentRequest struct {
	VariantID int64  `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
	Remark    string `json:"remark" validate:"required"`
}

// StatusRequest updates the status of a purchase or return.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
