package prtgapi

import (
	"context"
	"fmt"
	"strconv"

	"prtgctl/data/model"
	"prtgctl/data/response"
)

// Content is the kind of object a table query returns.
type Content string

const (
	ContentSensors  Content = "sensors"
	ContentDevices  Content = "devices"
	ContentGroups   Content = "groups"
	ContentChannels Content = "channels"
)

var columns = map[Content]string{
	ContentSensors:  "objid,name,type,device,group,probe,parentid,status,message,tags,interval",
	ContentDevices:  "objid,name,host,parentid,group,probe,status,tags",
	ContentGroups:   "objid,name,parentid,probe,status,tags",
	ContentChannels: "objid,name,lastvalue",
}

// Filter narrows a table query. Zero fields are not sent.
type Filter struct {
	Name     string
	ParentID int
	Group    string
	Tags     string
}

func (f Filter) params() model.Parameters {
	var p model.Parameters
	if f.Name != "" {
		p.Add("filter_name", f.Name)
	}
	if f.ParentID != 0 {
		p.Add("filter_parentid", strconv.Itoa(f.ParentID))
	}
	if f.Group != "" {
		p.Add("filter_group", f.Group)
	}
	if f.Tags != "" {
		p.Add("filter_tags", f.Tags)
	}
	return p
}

func tableParams(content Content) model.Parameters {
	p := model.Parameters{model.NewParameter("content", string(content))}
	p.AddRaw("columns", columns[content])
	p.AddRaw("count", "*")
	return p
}

func (c *Client) table(ctx context.Context, content Content, extra model.Parameters) ([]byte, error) {
	body, err := c.Do(ctx, tableEndpoint, append(tableParams(content), extra...))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", content, err)
	}
	if err := bodyError(body); err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (c *Client) GetSensors(ctx context.Context, f Filter) ([]model.Sensor, error) {
	body, err := c.table(ctx, ContentSensors, f.params())
	if err != nil {
		return nil, err
	}
	return response.Sensors(body)
}

func (c *Client) GetDevices(ctx context.Context, f Filter) ([]model.Device, error) {
	body, err := c.table(ctx, ContentDevices, f.params())
	if err != nil {
		return nil, err
	}
	return response.Devices(body)
}

func (c *Client) GetGroups(ctx context.Context, f Filter) ([]model.Group, error) {
	body, err := c.table(ctx, ContentGroups, f.params())
	if err != nil {
		return nil, err
	}
	return response.Groups(body)
}

// GetChannels lists the channels of a sensor. Limit fields are not part of
// the table; use ChannelSettings for those.
func (c *Client) GetChannels(ctx context.Context, sensorID int) ([]model.Channel, error) {
	body, err := c.table(ctx, ContentChannels, model.Parameters{model.NewParameter("id", strconv.Itoa(sensorID))})
	if err != nil {
		return nil, err
	}
	return response.Channels(body, sensorID)
}

// ChannelSettings reads the limit state and unit factor of one channel.
func (c *Client) ChannelSettings(ctx context.Context, sensorID, channelID int) (*model.Channel, error) {
	params := model.Parameters{
		model.NewParameter("id", strconv.Itoa(sensorID)),
		model.NewParameter("channel", strconv.Itoa(channelID)),
	}
	body, err := c.Do(ctx, channelEditEndpoint, params)
	if err != nil {
		return nil, fmt.Errorf("get settings of channel %d on sensor %d: %w", channelID, sensorID, err)
	}
	if err := bodyError(body); err != nil {
		return nil, err
	}
	return response.ChannelSettings([]byte(body), sensorID, channelID)
}
