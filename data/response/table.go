// Package response decodes the bodies PRTG returns for table queries, error
// responses and channel settings pages into data/model records.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/mitchellh/mapstructure"

	"prtgctl/data/model"
)

// Table roots as returned by api/table.xml for each content type.
const (
	RootSensors  = "sensors"
	RootDevices  = "devices"
	RootGroups   = "groups"
	RootChannels = "channels"
)

// ServerError is an error PRTG reported in the response body.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ErrorMessage extracts the text of a <prtg><error> body. ok is false when
// body is not a PRTG error document.
func ErrorMessage(body []byte) (msg string, ok bool) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return "", false
	}
	v, err := m.ValueForPath("prtg.error")
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Items returns the <item> records under root. A table with a single item
// decodes to a map rather than a list, so both shapes are accepted.
func Items(body []byte, root string) ([]map[string]interface{}, error) {
	if msg, ok := ErrorMessage(body); ok {
		return nil, &ServerError{Message: msg}
	}

	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s table: %w", root, err)
	}
	table, ok := m[root]
	if !ok {
		return nil, fmt.Errorf("decode %s table: missing <%s> root", root, root)
	}
	tm, ok := table.(map[string]interface{})
	if !ok {
		// <sensors/> with no children
		return nil, nil
	}

	switch items := tm["item"].(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return []map[string]interface{}{items}, nil
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			im, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.New("decode " + root + " table: malformed item")
			}
			out = append(out, im)
		}
		return out, nil
	}
	return nil, fmt.Errorf("decode %s table: malformed item list", root)
}

// mapToStruct decodes a table item into s. PRTG sends every column as text,
// so numeric fields are converted leniently.
func mapToStruct(m map[string]interface{}, s interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

func decodeTable[T any](body []byte, root string) ([]T, error) {
	items, err := Items(body, root)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var rec T
		if err := mapToStruct(item, &rec); err != nil {
			return nil, fmt.Errorf("decode %s table: %w", root, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func Sensors(body []byte) ([]model.Sensor, error) {
	return decodeTable[model.Sensor](body, RootSensors)
}

func Devices(body []byte) ([]model.Device, error) {
	return decodeTable[model.Device](body, RootDevices)
}

func Groups(body []byte) ([]model.Group, error) {
	return decodeTable[model.Group](body, RootGroups)
}

// Channels decodes the channel table of sensorID.
func Channels(body []byte, sensorID int) ([]model.Channel, error) {
	chans, err := decodeTable[model.Channel](body, RootChannels)
	if err != nil {
		return nil, err
	}
	for i := range chans {
		chans[i].SensorID = sensorID
		chans[i].Factor = "1"
	}
	return chans, nil
}
