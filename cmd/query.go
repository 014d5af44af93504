package cmd

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"prtgctl/data/model"
	"prtgctl/prtgapi"
)

var (
	filterName   string
	filterParent int
	filterGroup  string
	filterTags   string
	recursive    bool
	withLimits   bool
)

func queryFilter() prtgapi.Filter {
	return prtgapi.Filter{Name: filterName, ParentID: filterParent, Group: filterGroup, Tags: filterTags}
}

func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVar(&filterName, "name", "", "only objects with this name")
	c.Flags().IntVar(&filterParent, "parent", 0, "only objects below this parent ID")
	c.Flags().StringVar(&filterTags, "tags", "", "only objects with this tag")
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List sensors",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		var (
			sensors []model.Sensor
			err     error
		)
		if recursive {
			if filterGroup == "" {
				return errors.New("--recursive requires --group")
			}
			sensors, err = s.client.GetSensorsInGroup(ctx, filterGroup)
		} else {
			sensors, err = s.client.GetSensors(ctx, queryFilter())
		}
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(sensors))
		for _, x := range sensors {
			rows = append(rows, []string{strconv.Itoa(x.ID), x.Name, x.Device, x.Status.String(), x.Message})
		}
		printTable(os.Stdout, []string{"ID", "Name", "Device", "Status", "Message"}, rows)
		return nil
	}),
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		devices, err := s.client.GetDevices(ctx, queryFilter())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(devices))
		for _, d := range devices {
			info := d.GetDeviceInfo()
			rows = append(rows, []string{info["id"], info["name"], info["host"], info["group"], info["status"]})
		}
		printTable(os.Stdout, []string{"ID", "Name", "Host", "Group", "Status"}, rows)
		return nil
	}),
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		groups, err := s.client.GetGroups(ctx, queryFilter())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, []string{strconv.Itoa(g.ID), g.Name, strconv.Itoa(g.ParentID), g.Probe, g.Status.String()})
		}
		printTable(os.Stdout, []string{"ID", "Name", "Parent", "Probe", "Status"}, rows)
		return nil
	}),
}

var channelsCmd = &cobra.Command{
	Use:   "channels <sensor-id>",
	Short: "List the channels of a sensor",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		chans, err := s.client.GetChannels(ctx, id, withLimits)
		if err != nil {
			return err
		}

		headers := []string{"ID", "Name", "Last Value"}
		if withLimits {
			headers = append(headers, "Upper Error", "Lower Error", "Upper Warning", "Lower Warning", "Limits")
		}
		rows := make([][]string, 0, len(chans))
		for _, ch := range chans {
			row := []string{strconv.Itoa(ch.ID), ch.Name, ch.LastValue}
			if withLimits {
				row = append(row,
					formatLimit(ch.UpperErrorLimit), formatLimit(ch.LowerErrorLimit),
					formatLimit(ch.UpperWarningLimit), formatLimit(ch.LowerWarningLimit),
					strconv.FormatBool(ch.LimitsEnabled))
			}
			rows = append(rows, row)
		}
		printTable(os.Stdout, headers, rows)
		return nil
	}),
}

func formatLimit(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func init() {
	for _, c := range []*cobra.Command{sensorsCmd, devicesCmd, groupsCmd} {
		addFilterFlags(c)
	}
	sensorsCmd.Flags().StringVar(&filterGroup, "group", "", "only sensors in this group")
	sensorsCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "include sensors of nested groups, requires --group")
	channelsCmd.Flags().BoolVar(&withLimits, "limits", false, "also read channel limits, one request per channel")

	rootCmd.AddCommand(sensorsCmd, devicesCmd, groupsCmd, channelsCmd)
}
