package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"prtgctl/auth"
	"prtgctl/config"
	"prtgctl/data/model"
	"prtgctl/logging"
	"prtgctl/metrics"
	"prtgctl/notify"
	"prtgctl/property"
	"prtgctl/prtg"
	"prtgctl/prtgapi"
)

var (
	cfgFile     string
	profileFile string
	profileName string
	server      string
	username    string
	password    string
	passhash    string
	locale      string
	logLevel    string
	version     string
)

var rootCmd = &cobra.Command{
	Use:   "prtgctl",
	Short: "Query and modify objects on a PRTG Network Monitor server",
	Long: `prtgctl talks to the PRTG HTTP API.

It can list sensors, devices, groups and channels, change object and
channel properties on many objects at once, geocode locations through the
server and add sensors to devices.

Connection settings are read from a YAML config file, an INI profile and
the command line, in that order.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (YAML)")
	f.StringVar(&profileFile, "profiles", "", "profile file (INI)")
	f.StringVar(&profileName, "profile", "", "profile to use from the profile file")
	f.StringVarP(&server, "server", "s", "", "PRTG server address")
	f.StringVarP(&username, "username", "u", "", "PRTG username")
	f.StringVarP(&password, "password", "p", "", "PRTG password, exchanged for a passhash")
	f.StringVar(&passhash, "passhash", "", "PRTG passhash")
	f.StringVar(&locale, "locale", "", "locale decimal values are written in, e.g. de-DE")
	f.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&version, "prtg-version", "", "assume this PRTG version instead of asking the server")
}

// loadConfig merges the config file, profile and flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}
	if profileName != "" {
		if profileFile == "" {
			return nil, errors.New("--profile requires --profiles")
		}
		p, err := config.LoadProfile(profileFile, profileName)
		if err != nil {
			return nil, err
		}
		cfg.Apply(p)
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{server, &cfg.Server},
		{username, &cfg.Username},
		{passhash, &cfg.PassHash},
		{locale, &cfg.Locale},
		{logLevel, &cfg.Log.Level},
		{version, &cfg.Version},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
	return cfg, nil
}

// session is everything a command needs to talk to the server.
type session struct {
	client    *prtg.Client
	logger    *slog.Logger
	publisher *notify.Publisher
	metrics   *http.Server
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	if cfg.Server == "" {
		return nil, errors.New("no server configured, use --server or a config file")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	creds := cfg.Credentials()
	if creds.PassHash == "" && password != "" {
		if creds, err = auth.Login(ctx, httpClient, cfg.Server, cfg.Username, password); err != nil {
			return nil, err
		}
	}

	loc, err := property.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}

	s := &session{logger: logger}
	apiOpts := []prtgapi.Option{prtgapi.WithHTTPClient(httpClient), prtgapi.WithLogger(logger)}
	if cfg.Version != "" {
		v, err := model.ParseVersion(cfg.Version)
		if err != nil {
			return nil, err
		}
		apiOpts = append(apiOpts, prtgapi.WithVersion(v))
	}
	if cfg.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		apiOpts = append(apiOpts, prtgapi.WithObserver(metrics.NewPromObs(reg)))
		s.metrics = &http.Server{Addr: cfg.Metrics.Listen, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener stopped", "error", err)
			}
		}()
	}

	api, err := prtgapi.New(cfg.Server, creds, apiOpts...)
	if err != nil {
		s.Close()
		return nil, err
	}

	opts := []prtg.Option{prtg.WithLocale(loc), prtg.WithLogger(logger)}
	if cfg.MQTT.Enabled() {
		s.publisher = notify.NewPublisher(notify.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
			QoS:      cfg.MQTT.QoS,
		}, logger)
		if err := s.publisher.Connect(ctx); err != nil {
			logger.Warn("change notifications disabled", "error", err)
			s.publisher = nil
		} else {
			opts = append(opts, prtg.WithNotifier(s.publisher))
		}
	}

	s.client = prtg.New(api, opts...)
	return s, nil
}

func (s *session) Close() {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.metrics.Shutdown(ctx)
	}
}

// withSession opens a session for the duration of run.
func withSession(run func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		return run(ctx, s, args)
	}
}

// parseIDs accepts a comma separated list of object IDs.
func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid object ID %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, prtg.ErrNoObjects
	}
	return ids, nil
}
