package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus int

const (
	AppointmentStatusScheduled AppointmentStatus = 0
	AppointmentStatusDone      AppointmentStatus = 1
	AppointmentStatusCancelled AppointmentStatus = 2
)

func (s AppointmentStatus) String() string {
	return [...]string{"Scheduled", "Done", "Cancelled"}[s]
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AppointmentStatus(i)
		return nil
	}
	switch str {
	case "Scheduled":
		*s = AppointmentStatusScheduled
	case "Done":
		*s = AppointmentStatusDone
	case "Cancelled":
		*s = AppointmentStatusCancelled
	}
	return nil
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AppointmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AppointmentStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = AppointmentStatus(v)
	case int:
		*s = AppointmentStatus(v)
	}
	return nil
}
