package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prtgctl/auth"
	"prtgctl/data/model"
	"prtgctl/sensorparams"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange a password for a passhash",
	Long: `Log in with --username and --password and print the passhash PRTG
issues for the account. Store the passhash in a config file or profile
instead of the password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Server == "" || cfg.Username == "" || password == "" {
			return errors.New("login requires --server, --username and --password")
		}
		creds, err := auth.Connect(cmd.Context(), cfg.Server, cfg.Username, password)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error logging in:", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), creds.PassHash)
		return nil
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate <address>",
	Short: "Resolve an address or coordinates the way set Location does",
	Args:  cobra.MinimumNArgs(1),
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		loc, err := s.client.ResolveAddress(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if loc.IsZero() {
			fmt.Println("(empty)")
			return nil
		}
		printTable(os.Stdout, []string{"Label", "Address", "Latitude", "Longitude"}, [][]string{{
			loc.Label, loc.Address,
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		}})
		return nil
	}),
}

var (
	sensorType     string
	sensorName     string
	sensorTags     []string
	sensorPriority int
	sensorInterval int
	exeFile        string
	exeArgs        string
	exeTimeout     int
	services       []string
	rawParams      []string
)

var addSensorCmd = &cobra.Command{
	Use:   "add-sensor <device-id>",
	Short: "Add a sensor to a device",
	Long: `Add a sensor to a device. Supported types are exexml and wmiservice;
use --param to pass the parameters of any other type as given.

  prtgctl add-sensor 3001 --type exexml --name Backup --exe backup.ps1
  prtgctl add-sensor 3001 --type wmiservice --service Spooler --service W32Time
  prtgctl add-sensor 3001 --param name_=Ping --param sensortype=ping`,
	Args: cobra.ExactArgs(1),
	RunE: withSession(func(ctx context.Context, s *session, args []string) error {
		device, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid device ID %q", args[0])
		}
		p, err := sensorParams()
		if err != nil {
			return err
		}
		return s.client.AddSensor(ctx, device, p)
	}),
}

func sensorParams() (sensorparams.Params, error) {
	if len(rawParams) > 0 {
		var params model.Parameters
		for _, a := range rawParams {
			name, value, err := splitAssignment(a)
			if err != nil {
				return nil, err
			}
			params.Add(name, value)
		}
		return sensorparams.NewRaw(params)
	}

	common := sensorparams.Common{
		Name:     sensorName,
		Tags:     sensorTags,
		Priority: model.Priority(sensorPriority),
		Interval: sensorInterval,
	}
	p, err := sensorparams.New(sensorType, nil, nil)
	if err != nil {
		return nil, err
	}
	switch t := p.(type) {
	case *sensorparams.ExeXML:
		t.Common = common
		t.ExeFile = exeFile
		t.Args = exeArgs
		t.Timeout = exeTimeout
	case *sensorparams.WMIService:
		t.Common = common
		t.Services = services
	}
	return p, nil
}

func init() {
	f := addSensorCmd.Flags()
	f.StringVar(&sensorType, "type", "exexml", "sensor type")
	f.StringVar(&sensorName, "name", "", "sensor name")
	f.StringSliceVar(&sensorTags, "tag", nil, "sensor tag, may be repeated")
	f.IntVar(&sensorPriority, "priority", 0, "priority from 1 to 5")
	f.IntVar(&sensorInterval, "interval", 0, "scanning interval in seconds, 0 inherits it")
	f.StringVar(&exeFile, "exe", "", "script to run (exexml)")
	f.StringVar(&exeArgs, "args", "", "script arguments (exexml)")
	f.IntVar(&exeTimeout, "timeout", 0, "script timeout in seconds (exexml)")
	f.StringArrayVar(&services, "service", nil, "service to monitor, may be repeated (wmiservice)")
	f.StringArrayVar(&rawParams, "param", nil, "raw name=value parameter, may be repeated")

	rootCmd.AddCommand(loginCmd, locateCmd, addSensorCmd)
}
