package prtg

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"prtgctl/notify"
	"prtgctl/sensorparams"
)

// AddSensor creates a sensor under deviceID.
func (c *Client) AddSensor(ctx context.Context, deviceID int, p sensorparams.Params) error {
	if deviceID <= 0 {
		return fmt.Errorf("invalid device ID %d", deviceID)
	}
	params, err := p.Parameters()
	if err != nil {
		return err
	}

	c.operationLock.Lock()
	defer c.operationLock.Unlock()

	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "device", deviceID, "type", p.SensorType())
	if err := c.api.AddSensor(ctx, deviceID, params); err != nil {
		logger.Warn("add sensor failed", "error", err)
		return err
	}
	logger.Info("added sensor")
	c.notify(ctx, logger, notify.Change{
		RequestID: requestID,
		Endpoint:  "addsensor5.htm",
		ObjectIDs: []int{deviceID},
		Params:    params.Names(),
	})
	return nil
}
