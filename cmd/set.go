package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prtgctl/data/model"
	"prtgctl/property"
	"prtgctl/prtg"
)

var rawChannel int

// splitAssignment splits name=value. The value may contain further '='.
func splitAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", s)
	}
	return name, value, nil
}

func objectParams(args []string) ([]property.ObjectParameter, error) {
	params := make([]property.ObjectParameter, 0, len(args))
	for _, a := range args {
		name, text, err := splitAssignment(a)
		if err != nil {
			return nil, err
		}
		p, ok := property.LookupObject(name)
		if !ok {
			return nil, fmt.Errorf("unknown object property %q", name)
		}
		v, err := property.ParseValue(p, text)
		if err != nil {
			return nil, err
		}
		params = append(params, property.NewObjectParameter(p, v))
	}
	return params, nil
}

func channelParams(args []string) ([]property.ChannelParameter, error) {
	params := make([]property.ChannelParameter, 0, len(args))
	for _, a := range args {
		name, text, err := splitAssignment(a)
		if err != nil {
			return nil, err
		}
		p, ok := property.LookupChannel(name)
		if !ok {
			return nil, fmt.Errorf("unknown channel property %q", name)
		}
		v, err := property.ParseValue(p, text)
		if err != nil {
			return nil, err
		}
		params = append(params, property.NewChannelParameter(p, v))
	}
	return params, nil
}

// reportPartial prints which objects were and were not changed.
func reportPartial(cmd *cobra.Command, err error) error {
	var partial *prtg.PartialError
	if errors.As(err, &partial) {
		out := cmd.ErrOrStderr()
		for _, ids := range partial.Applied {
			fmt.Fprintf(out, "applied: %s\n", joinInts(ids))
		}
		fmt.Fprintf(out, "failed:  %s\n", joinInts(partial.Failed))
		for _, ids := range partial.Pending {
			fmt.Fprintf(out, "skipped: %s\n", joinInts(ids))
		}
	}
	return err
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ",")
}

var setCmd = &cobra.Command{
	Use:   "set <ids> <property=value>...",
	Short: "Set object properties",
	Long: `Set one or more properties on a comma separated list of objects.

Properties are named as listed by "prtgctl properties". An empty value or
"null" clears the property. Locations may be an address, which is geocoded
through the server, or coordinates. A first line separated by a newline
becomes the location's label.

  prtgctl set 1001,1002 Name=ping Interval=60
  prtgctl set 1001 Location="23 Fleet Street" LocationName=Headquarters`,
	Args: cobra.MinimumNArgs(2),
}

var setChannelCmd = &cobra.Command{
	Use:   "set-channel <sensor-ids> <channel-id> <property=value>...",
	Short: "Set channel properties",
	Long: `Set one or more properties of a channel on a comma separated list of
sensors. Changes to limit messages may need the current limits of each
sensor, which are read from the server first.

  prtgctl set-channel 1001,2001 1 UpperErrorLimit=100
  prtgctl set-channel 1001 1 ErrorLimitMessage="too slow"`,
	Args: cobra.MinimumNArgs(3),
}

var setRawCmd = &cobra.Command{
	Use:   "set-raw <ids> <name=value>...",
	Short: "Write raw editsettings parameters",
	Long: `Write parameters to objects exactly as given. With --channel the
channel ID is appended to each parameter name.`,
	Args: cobra.MinimumNArgs(2),
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List the properties set and set-channel accept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, p := range property.All() {
			d := property.MustDescribe(p)
			rows = append(rows, []string{p.Scope(), p.String(), d.Kind.String(), d.Wire})
		}
		printTable(cmd.OutOrStdout(), []string{"Scope", "Property", "Kind", "Parameter"}, rows)
		return nil
	},
}

func init() {
	setCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[0])
		if err != nil {
			return err
		}
		params, err := objectParams(args[1:])
		if err != nil {
			return err
		}
		return withSession(func(ctx context.Context, s *session, _ []string) error {
			return reportPartial(cmd, s.client.SetObjectProperties(ctx, ids, params...))
		})(cmd, args)
	}

	setChannelCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[0])
		if err != nil {
			return err
		}
		channel, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid channel ID %q", args[1])
		}
		params, err := channelParams(args[2:])
		if err != nil {
			return err
		}
		return withSession(func(ctx context.Context, s *session, _ []string) error {
			return reportPartial(cmd, s.client.SetChannelProperties(ctx, ids, channel, params...))
		})(cmd, args)
	}

	setRawCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[0])
		if err != nil {
			return err
		}
		var params []model.Parameter
		for _, a := range args[1:] {
			name, value, err := splitAssignment(a)
			if err != nil {
				return err
			}
			params = append(params, model.NewParameter(name, value))
		}
		channelSet := cmd.Flags().Changed("channel")
		return withSession(func(ctx context.Context, s *session, _ []string) error {
			if channelSet {
				return s.client.SetChannelPropertyRaw(ctx, ids, rawChannel, params...)
			}
			return s.client.SetObjectPropertyRaw(ctx, ids, params...)
		})(cmd, args)
	}
	setRawCmd.Flags().IntVar(&rawChannel, "channel", 0, "channel ID appended to each parameter name")

	rootCmd.AddCommand(setCmd, setChannelCmd, setRawCmd, propertiesCmd)
}
