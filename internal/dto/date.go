package dto

import (
	"encoding/json"
	"time"
)

// Date is a calendar day ("2006-01-02") in request and response bodies.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

func DateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

func TimeFromDate(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
