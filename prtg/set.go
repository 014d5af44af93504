package prtg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"prtgctl/data/model"
	"prtgctl/limits"
	"prtgctl/notify"
	"prtgctl/property"
	"prtgctl/prtgapi"
)

var errNoProperties = errors.New("at least one property must be specified")

// SetObjectProperty sets a single property on one or more objects.
func (c *Client) SetObjectProperty(ctx context.Context, ids []int, p property.ObjectProperty, value any) error {
	return c.SetObjectProperties(ctx, ids, property.NewObjectParameter(p, value))
}

// SetObjectProperties sets several properties on one or more objects with
// a single request. Locations given as an address are geocoded first.
func (c *Client) SetObjectProperties(ctx context.Context, ids []int, params ...property.ObjectParameter) error {
	if err := checkIDs(ids); err != nil {
		return err
	}
	if len(params) == 0 {
		return errNoProperties
	}

	values, err := property.CoerceObject(params)
	if err != nil {
		return err
	}
	if err := property.CheckDependencies(values); err != nil {
		return err
	}
	if values, err = c.resolveLocations(ctx, values); err != nil {
		return err
	}

	built, err := property.Build(values, property.BuildOptions{Locale: c.locale})
	if err != nil {
		return err
	}
	return c.apply(ctx, []limits.Group{{IDs: ids, Params: built}}, nil)
}

func (c *Client) resolveLocations(ctx context.Context, values []property.Value) ([]property.Value, error) {
	out := make([]property.Value, len(values))
	copy(out, values)
	for i, v := range out {
		text, ok := v.Raw.(string)
		if !ok || v.Property() != property.Location {
			continue
		}
		loc, err := c.resolver.Resolve(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i].Raw = loc
	}
	return out, nil
}

// SetChannelProperty sets a single property on a channel of one or more
// sensors.
func (c *Client) SetChannelProperty(ctx context.Context, ids []int, channelID int, p property.ChannelProperty, value any) error {
	return c.SetChannelProperties(ctx, ids, channelID, property.NewChannelParameter(p, value))
}

// SetChannelProperties sets several properties on a channel of one or more
// sensors. The current channel state is fetched from the server when the
// change depends on it.
func (c *Client) SetChannelProperties(ctx context.Context, ids []int, channelID int, params ...property.ChannelParameter) error {
	return c.SetChannelPropertiesWithChannels(ctx, ids, channelID, nil, params...)
}

// SetChannelPropertiesWithChannels is SetChannelProperties with the current
// channel state supplied by the caller, one entry per sensor.
func (c *Client) SetChannelPropertiesWithChannels(ctx context.Context, ids []int, channelID int, channels []model.Channel, params ...property.ChannelParameter) error {
	if err := checkIDs(ids); err != nil {
		return err
	}
	if channelID < 0 {
		return fmt.Errorf("invalid channel ID %d", channelID)
	}
	if len(params) == 0 {
		return errNoProperties
	}

	values, err := property.CoerceChannel(params)
	if err != nil {
		return err
	}
	built, err := property.Build(values, property.BuildOptions{Locale: c.locale, Channel: channelID})
	if err != nil {
		return err
	}

	var version model.Version
	if limits.NeedsVersion(values) {
		if version, err = c.api.Version(ctx); err != nil {
			return err
		}
	}
	plan := limits.Negotiate(values, version)

	if plan.NeedsChannels() && channels == nil {
		if channels, err = c.lookupChannels(ctx, ids, channelID); err != nil {
			return err
		}
	}

	groups, err := limits.Partition(limits.Batch{
		IDs:      ids,
		Channel:  channelID,
		Channels: channels,
		Params:   built,
		Locale:   c.locale,
	}, plan)
	if err != nil {
		return err
	}
	return c.apply(ctx, groups, &channelID)
}

// lookupChannels reads the limit state of channelID on every sensor.
func (c *Client) lookupChannels(ctx context.Context, ids []int, channelID int) ([]model.Channel, error) {
	out := make([]model.Channel, 0, len(ids))
	for _, id := range ids {
		list, err := c.api.GetChannels(ctx, id)
		if err != nil {
			return nil, err
		}
		var found *model.Channel
		for i := range list {
			if list[i].ID == channelID {
				found = &list[i]
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("channel %d of sensor %d: %w", channelID, id, prtgapi.ErrNotFound)
		}

		settings, err := c.api.ChannelSettings(ctx, id, channelID)
		if err != nil {
			return nil, err
		}
		if settings.Name == "" {
			settings.Name = found.Name
		}
		settings.LastValue = found.LastValue
		out = append(out, *settings)
	}
	return out, nil
}

// SetObjectPropertyRaw writes parameters as given, without validation.
func (c *Client) SetObjectPropertyRaw(ctx context.Context, ids []int, params ...model.Parameter) error {
	if err := checkIDs(ids); err != nil {
		return err
	}
	if len(params) == 0 {
		return errNoProperties
	}
	return c.apply(ctx, []limits.Group{{IDs: ids, Params: model.Parameters(params).Clone()}}, nil)
}

// SetChannelPropertyRaw writes parameters to a channel, appending the
// channel ID to each name.
func (c *Client) SetChannelPropertyRaw(ctx context.Context, ids []int, channelID int, params ...model.Parameter) error {
	if err := checkIDs(ids); err != nil {
		return err
	}
	if len(params) == 0 {
		return errNoProperties
	}
	suffix := "_" + strconv.Itoa(channelID)
	out := model.Parameters(params).Clone()
	for i := range out {
		out[i].Name += suffix
	}
	return c.apply(ctx, []limits.Group{{IDs: ids, Params: out}}, &channelID)
}

// apply sends one editsettings request per group, stopping at the first
// failure.
func (c *Client) apply(ctx context.Context, groups []limits.Group, channel *int) error {
	c.operationLock.Lock()
	defer c.operationLock.Unlock()

	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID)

	var applied [][]int
	for i, g := range groups {
		err := ctx.Err()
		if err == nil {
			params := append(model.Parameters{model.IDParameter(g.IDs)}, g.Params...)
			err = c.api.EditSettings(ctx, params)
		}
		if err != nil {
			logger.Warn("edit failed", "ids", joinIDs(g.IDs), "error", err)
			if len(applied) == 0 {
				return err
			}
			pending := make([][]int, 0, len(groups)-i-1)
			for _, rest := range groups[i+1:] {
				pending = append(pending, rest.IDs)
			}
			return &PartialError{Applied: applied, Failed: g.IDs, Pending: pending, Err: err}
		}

		logger.Info("applied settings", "ids", joinIDs(g.IDs), "params", strings.Join(g.Params.Names(), ","))
		c.notify(ctx, logger, notify.Change{
			RequestID: requestID,
			Endpoint:  "editsettings",
			ObjectIDs: g.IDs,
			Channel:   channel,
			Params:    g.Params.Names(),
		})
		applied = append(applied, g.IDs)
	}
	return nil
}

// notify publishes ch. A failed publish is logged; the change itself has
// already been applied.
func (c *Client) notify(ctx context.Context, logger *slog.Logger, ch notify.Change) {
	if c.notifier == nil {
		return
	}
	ch.Applied = time.Now().UTC()
	if err := c.notifier.Notify(ctx, ch); err != nil {
		logger.Warn("change notification failed", "error", err)
	}
}
