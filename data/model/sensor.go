package model

import "strconv"

type Sensor struct {
	ID       int    `mapstructure:"objid"`
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type_raw"`
	Device   string `mapstructure:"device"`
	Group    string `mapstructure:"group"`
	Probe    string `mapstructure:"probe"`
	ParentID int    `mapstructure:"parentid"`
	Status   Status `mapstructure:"status_raw"`
	Message  string `mapstructure:"message_raw"`
	Tags     string `mapstructure:"tags"`
	Interval int    `mapstructure:"interval_raw"`
}

func NewSensor(id int, name string, parentID int) *Sensor {
	return &Sensor{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
}

func (s *Sensor) GetSensorInfo() map[string]string {
	return map[string]string{
		"id":      itoa(s.ID),
		"name":    s.Name,
		"device":  s.Device,
		"status":  s.Status.String(),
		"message": s.Message,
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
