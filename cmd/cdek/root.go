package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/cdek/service"
	log "github.com/go-kit/kit/log"
	"github.com/kardianos/osext"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type app struct {
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper
	now    func() time.Time
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		v:      viper.New(),
		now:    time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "cdek",
		Short:        "CDEK integration api command line",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.readConfig(cfgFile)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default config.* next to executable)")
	f.String("host", service.DefaultHost, "carrier gateway")
	f.String("account", "", "integration account")
	f.String("password", "", "integration password")
	f.Duration("timeout", 30*time.Second, "request timeout")
	f.Int("retries", 3, "retries on transport failures")
	f.StringP("format", "f", "yaml", "output format: yaml|json")
	f.Bool("debug", false, "log requests and raw responses to stderr")
	a.v.BindPFlag("cdek.host", f.Lookup("host"))
	a.v.BindPFlag("cdek.account", f.Lookup("account"))
	a.v.BindPFlag("cdek.password", f.Lookup("password"))
	a.v.BindPFlag("cdek.timeout", f.Lookup("timeout"))
	a.v.BindPFlag("cdek.retries", f.Lookup("retries"))
	a.v.BindPFlag("format", f.Lookup("format"))
	a.v.BindPFlag("debug", f.Lookup("debug"))

	cmd.AddCommand(
		registerCmd(a),
		statusCmd(a),
		courierCmd(a),
		renderCmd(a),
	)
	return cmd
}

func (a *app) readConfig(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		return a.v.ReadInConfig()
	}
	path, err := osext.ExecutableFolder()
	if err != nil {
		path = "."
	}
	a.v.AddConfigPath(path)
	a.v.SetConfigName("config")
	if err := a.v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}
	return nil
}

func (a *app) logger() log.Logger {
	if !a.v.GetBool("debug") {
		return log.NewNopLogger()
	}
	return log.With(log.NewLogfmtLogger(a.errOut), "ts", log.DefaultTimestamp)
}

func (a *app) credentials() (string, string, error) {
	account, password := a.v.GetString("cdek.account"), a.v.GetString("cdek.password")
	if account == "" || password == "" {
		return "", "", errors.New("cdek.account and cdek.password must be set")
	}
	return account, password, nil
}

func (a *app) deliveryFactory() (*cdek.DeliveryFactory, error) {
	account, password, err := a.credentials()
	if err != nil {
		return nil, err
	}
	return &cdek.DeliveryFactory{Account: account, Password: password}, nil
}

func (a *app) statusFactory() (*cdek.StatusReportFactory, error) {
	account, password, err := a.credentials()
	if err != nil {
		return nil, err
	}
	return &cdek.StatusReportFactory{Account: account, Password: password}, nil
}

func (a *app) service() (service.Service, error) {
	logger := a.logger()
	var uriLogger log.Logger
	if a.v.GetBool("debug") {
		uriLogger = logger
	}
	cli := service.DefaultHTTPClient(a.v.GetDuration("cdek.timeout"))
	return service.New(
		a.v.GetString("cdek.host"),
		service.DefaultHTTPOptions(cli, uriLogger),
		service.DefaultMiddleware(logger, uint64(a.v.GetInt("cdek.retries"))))
}

func (a *app) print(v interface{}) error {
	switch a.v.GetString("format") {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", a.v.GetString("format"))
}
