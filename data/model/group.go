package model

type Group struct {
	ID       int    `mapstructure:"objid"`
	Name     string `mapstructure:"name"`
	ParentID int    `mapstructure:"parentid"`
	Probe    string `mapstructure:"probe"`
	Status   Status `mapstructure:"status_raw"`
	Tags     string `mapstructure:"tags"`
}

func NewGroup(id int, name string, parentID int) *Group {
	return &Group{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
}
