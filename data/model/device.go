package model

type Device struct {
	ID       int    `mapstructure:"objid"`
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	ParentID int    `mapstructure:"parentid"`
	Group    string `mapstructure:"group"`
	Probe    string `mapstructure:"probe"`
	Status   Status `mapstructure:"status_raw"`
	Tags     string `mapstructure:"tags"`
}

func NewDevice(id int, name string) *Device {
	return &Device{
		ID:   id,
		Name: name,
	}
}

func (d *Device) GetDeviceInfo() map[string]string {
	return map[string]string{
		"id":     itoa(d.ID),
		"name":   d.Name,
		"host":   d.Host,
		"group":  d.Group,
		"status": d.Status.String(),
	}
}
