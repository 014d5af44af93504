package limits

import (
	"fmt"
	"sort"
	"strconv"

	"prtgctl/data/model"
	"prtgctl/property"
)

// Group is a set of sensors that can be updated with a single request.
type Group struct {
	IDs    []int
	Params model.Parameters
}

// Batch is a channel property change against several sensors.
type Batch struct {
	IDs     []int
	Channel int
	// Channels holds the current state of the channel on each sensor,
	// matched by SensorID. Only needed when the plan NeedsChannels.
	Channels []model.Channel
	Params   model.Parameters
	Locale   property.Locale
}

// Partition splits b into the requests required by plan.
//
// Without Reemit or Factors every sensor shares one request. When thresholds
// are written, sensors are grouped by their unit factor. When an existing
// threshold must be re-emitted, each request can carry only one value per
// field, so sensors are grouped greedily: the (field, value) pair shared by
// the most remaining sensors forms the next request, with ties going to the
// field checked first (UpperError, LowerError, UpperWarning, LowerWarning)
// and then to the value seen first. Sensor IDs within a request are sorted.
func Partition(b Batch, plan Plan) ([]Group, error) {
	switch {
	case len(plan.Factors) > 0:
		return byFactor(b, plan), nil
	case plan.Reemit:
		return byThreshold(b, plan)
	}
	return []Group{{IDs: append([]int(nil), b.IDs...), Params: b.Params.Clone()}}, nil
}

func channelIndex(channels []model.Channel) map[int]*model.Channel {
	idx := make(map[int]*model.Channel, len(channels))
	for i := range channels {
		idx[channels[i].SensorID] = &channels[i]
	}
	return idx
}

func byFactor(b Batch, plan Plan) []Group {
	idx := channelIndex(b.Channels)

	var order []string
	members := map[string][]int{}
	for _, id := range b.IDs {
		factor := "1"
		if ch, ok := idx[id]; ok {
			factor = ch.LimitFactor()
		}
		if _, seen := members[factor]; !seen {
			order = append(order, factor)
		}
		members[factor] = append(members[factor], id)
	}

	groups := make([]Group, 0, len(order))
	for _, factor := range order {
		params := b.Params.Clone()
		for _, p := range plan.Factors {
			params.Add(property.WireName(property.MustDescribe(p), b.Channel)+"_factor", factor)
		}
		groups = append(groups, Group{IDs: members[factor], Params: params})
	}
	return groups
}

func threshold(ch *model.Channel, p property.ChannelProperty) *float64 {
	switch p {
	case property.UpperErrorLimit:
		return ch.UpperErrorLimit
	case property.LowerErrorLimit:
		return ch.LowerErrorLimit
	case property.UpperWarningLimit:
		return ch.UpperWarningLimit
	case property.LowerWarningLimit:
		return ch.LowerWarningLimit
	}
	return nil
}

type candidate struct {
	field property.ChannelProperty
	value float64
	ids   []int
}

// writable lists the thresholds the request does not already write. A
// threshold cleared in the same call cannot be sent back.
func writable(b Batch) []property.ChannelProperty {
	var fields []property.ChannelProperty
	for _, field := range property.Thresholds {
		if !b.Params.Has(property.WireName(property.MustDescribe(field), b.Channel)) {
			fields = append(fields, field)
		}
	}
	return fields
}

func hasThreshold(ch *model.Channel, fields []property.ChannelProperty) bool {
	if !ch.HasLimit() {
		return false
	}
	for _, field := range fields {
		if threshold(ch, field) != nil {
			return true
		}
	}
	return false
}

func byThreshold(b Batch, plan Plan) ([]Group, error) {
	idx := channelIndex(b.Channels)
	fields := writable(b)

	var missing, remaining []int
	seen := map[int]bool{}
	for _, id := range b.IDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if ch, ok := idx[id]; !ok || !hasThreshold(ch, fields) {
			missing = append(missing, id)
			continue
		}
		remaining = append(remaining, id)
	}
	if len(missing) > 0 {
		return nil, missingLimitError(plan, b.Channel, missing)
	}

	var groups []Group
	for len(remaining) > 0 {
		var best *candidate
		for _, field := range fields {
			var candidates []*candidate
			for _, id := range remaining {
				v := threshold(idx[id], field)
				if v == nil {
					continue
				}
				var c *candidate
				for _, existing := range candidates {
					if existing.value == *v {
						c = existing
						break
					}
				}
				if c == nil {
					c = &candidate{field: field, value: *v}
					candidates = append(candidates, c)
				}
				c.ids = append(c.ids, id)
			}
			for _, c := range candidates {
				if best == nil || len(c.ids) > len(best.ids) {
					best = c
				}
			}
		}

		ids := append([]int(nil), best.ids...)
		sort.Ints(ids)

		params := b.Params.Clone()
		params.Add(property.WireName(property.MustDescribe(best.field), b.Channel), b.Locale.FormatFloat(best.value))
		groups = append(groups, Group{IDs: ids, Params: params})

		taken := map[int]bool{}
		for _, id := range best.ids {
			taken[id] = true
		}
		next := remaining[:0]
		for _, id := range remaining {
			if !taken[id] {
				next = append(next, id)
			}
		}
		remaining = next
	}
	return groups, nil
}

func missingLimitError(plan Plan, channel int, ids []int) error {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	msg := fmt.Sprintf("Cannot set property '%v' to value '%s' for Channel ID %d: ", plan.Subject.Property(), plan.Subject.Text(), channel)
	if len(sorted) == 1 {
		msg += fmt.Sprintf("Sensor ID %d does not have a limit value defined on it. ", sorted[0])
	} else {
		s := make([]string, len(sorted))
		for i, id := range sorted {
			s[i] = strconv.Itoa(id)
		}
		msg += fmt.Sprintf("Sensor IDs %s do not have a limit value defined on them. ", property.JoinList(s, "and"))
	}

	names := make([]string, len(property.Thresholds))
	for i, p := range property.Thresholds {
		names[i] = "'" + p.String() + "'"
	}
	msg += fmt.Sprintf("Please set one of %s first and then try again", property.JoinList(names, "or"))
	return &property.InvalidOperationError{Message: msg}
}
