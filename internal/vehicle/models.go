package vehicle

import "time"

// Vehicle is a delivery person's registered vehicle. Absence of a vehicle
// is a valid steady state, not an error.
type Vehicle struct {
	ID                 int64     `json:"id"`
	DeliveryPersonID   int64     `json:"delivery_person_id"`
	RegistrationNumber string    `json:"registration_number"`
	Type               string    `json:"type"`
	Make               string    `json:"make,omitempty"`
	Model              string    `json:"model,omitempty"`
	Year               int       `json:"year,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BasicInfo is the compact vehicle header shown on the panel.
type BasicInfo struct {
	RegistrationNumber string `json:"registration_number"`
	Type               string `json:"type"`
	Make               string `json:"make,omitempty"`
	Model              string `json:"model,omitempty"`
}

// Document is one uploaded vehicle document.
type Document struct {
	ID        int64      `json:"id"`
	Kind      string     `json:"kind"`
	Number    string     `json:"number,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// Insurance is the vehicle's insurance record.
type Insurance struct {
	Provider     string     `json:"provider"`
	PolicyNumber string     `json:"policy_number"`
	ValidFrom    *time.Time `json:"valid_from,omitempty"`
	ValidTo      *time.Time `json:"valid_to,omitempty"`
}

// ServiceRecord is one entry in the vehicle's service history.
type ServiceRecord struct {
	ID          int64     `json:"id"`
	ServicedAt  time.Time `json:"serviced_at"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost,omitempty"`
	OdometerKm  int       `json:"odometer_km,omitempty"`
}

// Info is the composite full-detail view of the vehicle.
type Info struct {
	Vehicle        *Vehicle        `json:"vehicle,omitempty"`
	Documents      []Document      `json:"documents"`
	Insurance      *Insurance      `json:"insurance,omitempty"`
	ServiceHistory []ServiceRecord `json:"service_history"`
}
