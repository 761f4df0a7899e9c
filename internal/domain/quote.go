package domain

import "time"

// MoveScope selects which geography fields of a quote are relevant.
type MoveScope string

const (
	ScopeLocal         MoveScope = "Local"
	ScopeDomestic      MoveScope = "Domestic"
	ScopeInternational MoveScope = "International"
)

// QuoteRecord is the reconciled representation of one moving-quote request.
// SessionID is the sole correlation key between the two submission phases;
// it and CreatedAt are write-once.
type QuoteRecord struct {
	SessionID string
	CreatedAt time.Time

	// contact
	Name             string
	Phone            string // combined value as stored in the sheet
	PhoneCountryCode string // kept separately until encode synthesizes Phone
	PhoneNumber      string
	Email            string

	MoveScope MoveScope

	// scope details (only the fields for the current scope are meaningful;
	// fields from a previous scope are retained as-is on scope change)
	CurrentAddress string
	NewAddress     string
	CurrentCity    string
	NewCity        string
	CurrentCountry string
	FromCity       string
	NewCountry     string
	ToCity         string

	// logistics
	HomeTypeDetails  string
	VehicleSelection string
	MovingDate       string
	Requirements     string
	EstimatedCost    string
	Distance         string
}

// QuotePayload is the partial payload carried by one submission request.
// Empty fields mean "not supplied" and never overwrite stored values.
type QuotePayload struct {
	Name             string `json:"name"`
	PhoneCountryCode string `json:"phone_country_code"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	MoveScope        string `json:"move_scope"`
	HomeTypeDetails  string `json:"home_type_details"`
	VehicleSelection string `json:"vehicle_selection"`
	MovingDate       string `json:"moving_date"`
	Requirements     string `json:"requirements"`
	CurrentAddress   string `json:"current_address"`
	NewAddress       string `json:"new_address"`
	CurrentCity      string `json:"current_city"`
	NewCity          string `json:"new_city"`
	CurrentCountry   string `json:"current_country"`
	FromCity         string `json:"from_city_international"`
	NewCountry       string `json:"new_country"`
	ToCity           string `json:"to_city_international"`
	EstimatedCost    string `json:"estimated_cost"`
	Distance         string `json:"distance"`
}
