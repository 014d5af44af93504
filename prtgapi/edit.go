package prtgapi

import (
	"context"
	"errors"
	"strconv"

	"prtgctl/data/model"
	"prtgctl/data/response"
)

// EditSettings sends an editsettings request. params must start with the
// id parameter.
func (c *Client) EditSettings(ctx context.Context, params model.Parameters) error {
	if len(params) == 0 || params[0].Name != "id" {
		return errors.New("editsettings requires an id parameter first")
	}
	body, err := c.Do(ctx, editEndpoint, params)
	if err != nil {
		return err
	}
	return bodyError(body)
}

// AddSensor creates a sensor under deviceID.
func (c *Client) AddSensor(ctx context.Context, deviceID int, params model.Parameters) error {
	p := append(model.Parameters{model.NewParameter("id", strconv.Itoa(deviceID))}, params...)
	body, err := c.Do(ctx, addSensorEndpoint, p)
	if err != nil {
		return err
	}
	return bodyError(body)
}

// bodyError reports a PRTG error document returned with a success status.
func bodyError(body string) error {
	if msg, ok := response.ErrorMessage([]byte(body)); ok {
		return &RequestError{Message: msg}
	}
	return nil
}
