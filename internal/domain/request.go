package domain

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

// StatusOpen is the only state; requests are never transitioned.
const StatusOpen RequestStatus = "open"

// RequestIDPrefix prefixes every generated request identifier.
const RequestIDPrefix = "REQ-"

// Request is a hospital's call for a quantity of one blood type.
type Request struct {
	ID       string        `json:"id"`
	Hospital string        `json:"hospital"`
	License  string        `json:"license"`
	Blood    BloodType     `json:"blood"`
	Qty      int           `json:"qty"`
	Status   RequestStatus `json:"status"`
	Created  Millis        `json:"created"`
}

// Stats are the aggregate counts shown on the home and admin pages.
type Stats struct {
	Donors    int `json:"donors"`
	Hospitals int `json:"hospitals"`
	Requests  int `json:"requests"`
}
