package ridesservice

// RideStatus статус поездки во внешнем сервисе поездок
type RideStatus string

const (
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusNoShow    RideStatus = "no_show"
)

// Ride модель поездки из RidesService
// Ref соответствует externalRef бронирования в расписании
type Ride struct {
	Ref      string     `json:"ref"`
	Status   RideStatus `json:"status"`
	Platform string     `json:"platform"`
	Earnings *float64   `json:"earnings,omitempty"`
	Rating   *float64   `json:"rating,omitempty"`
}

// ErrorResponse модель ошибки от RidesService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
