package prtg

import (
	"context"
	"fmt"

	"prtgctl/data/model"
	"prtgctl/location"
	"prtgctl/prtgapi"
)

func (c *Client) GetSensors(ctx context.Context, f prtgapi.Filter) ([]model.Sensor, error) {
	return c.api.GetSensors(ctx, f)
}

func (c *Client) GetDevices(ctx context.Context, f prtgapi.Filter) ([]model.Device, error) {
	return c.api.GetDevices(ctx, f)
}

func (c *Client) GetGroups(ctx context.Context, f prtgapi.Filter) ([]model.Group, error) {
	return c.api.GetGroups(ctx, f)
}

// GetChannels lists the channels of a sensor, including their limits when
// withSettings is set. Limits take one extra request per channel.
func (c *Client) GetChannels(ctx context.Context, sensorID int, withSettings bool) ([]model.Channel, error) {
	list, err := c.api.GetChannels(ctx, sensorID)
	if err != nil || !withSettings {
		return list, err
	}
	for i, ch := range list {
		settings, err := c.api.ChannelSettings(ctx, sensorID, ch.ID)
		if err != nil {
			return nil, err
		}
		settings.Name = ch.Name
		settings.LastValue = ch.LastValue
		list[i] = *settings
	}
	return list, nil
}

// GetSensorsInGroup returns every sensor below the group named name,
// including those in nested groups. The name must match exactly one group.
func (c *Client) GetSensorsInGroup(ctx context.Context, name string) ([]model.Sensor, error) {
	groups, err := c.api.GetGroups(ctx, prtgapi.Filter{Name: name})
	if err != nil {
		return nil, err
	}
	switch len(groups) {
	case 0:
		return nil, fmt.Errorf("group '%s': %w", name, prtgapi.ErrNotFound)
	case 1:
	default:
		return nil, fmt.Errorf("group name '%s' is ambiguous: %d groups match", name, len(groups))
	}

	sensors, err := c.api.GetSensors(ctx, prtgapi.Filter{Group: name})
	if err != nil {
		return nil, err
	}
	w := &groupWalk{c: c, seen: map[int]bool{}}
	w.add(sensors)
	if err := w.walk(ctx, groups[0].ID); err != nil {
		return nil, err
	}
	return w.sensors, nil
}

type groupWalk struct {
	c       *Client
	seen    map[int]bool
	sensors []model.Sensor
}

func (w *groupWalk) add(sensors []model.Sensor) {
	for _, s := range sensors {
		if !w.seen[s.ID] {
			w.seen[s.ID] = true
			w.sensors = append(w.sensors, s)
		}
	}
}

func (w *groupWalk) walk(ctx context.Context, groupID int) error {
	children, err := w.c.api.GetGroups(ctx, prtgapi.Filter{ParentID: groupID})
	if err != nil {
		return err
	}
	for _, g := range children {
		devices, err := w.c.api.GetDevices(ctx, prtgapi.Filter{ParentID: g.ID})
		if err != nil {
			return err
		}
		for _, d := range devices {
			sensors, err := w.c.api.GetSensors(ctx, prtgapi.Filter{ParentID: d.ID})
			if err != nil {
				return err
			}
			w.add(sensors)
		}
		if err := w.walk(ctx, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// ResolveAddress parses text as coordinates or geocodes it through the
// server.
func (c *Client) ResolveAddress(ctx context.Context, text string) (*location.Location, error) {
	return c.resolver.Resolve(ctx, text)
}
