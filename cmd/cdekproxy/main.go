package main

import (
	"context"
	"errors"
	"fmt"
	clog "log"
	"net/http"
	"os"
	"time"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/cdek/service"
	"github.com/egorka-gh/cdek/proxy"
	"github.com/egorka-gh/cdek/tracker"
	"github.com/egorka-gh/cdek/tracker/repo"
	service1 "github.com/kardianos/service"
	group "github.com/oklog/oklog/pkg/group"
	"github.com/spf13/viper"
)

//demon logger
var dLogger service1.Logger

type program struct {
	group     *group.Group
	rep       tracker.Repository
	interrupt chan struct{}
	quit      chan struct{}
}

//start os demon or console using kardianos
func main() {
	err := readConfig()
	if err != nil {
		clog.Fatal(err)
		return
	}

	svcConfig := &service1.Config{
		Name:        "CdekProxy",
		DisplayName: "CDEK Proxy Service",
		Description: "CDEK integration proxy and dispatch tracker",
	}
	prg := &program{}

	s, err := service1.New(prg, svcConfig)
	if err != nil {
		clog.Fatal(err)
		return
	}
	if len(os.Args) > 1 {
		err = service1.Control(s, os.Args[1])
		if err != nil {
			clog.Fatal(err)
		}
		return
	}
	dLogger, err = s.Logger(nil)
	if err != nil {
		clog.Fatal(err)
	}
	err = s.Run()
	if err != nil {
		dLogger.Error(err)
	}
}

func (p *program) Start(s service1.Service) error {
	g, rep, err := initProxy()
	if err != nil {
		return err
	}

	p.group = g
	p.rep = rep
	p.interrupt = make(chan struct{})
	p.quit = make(chan struct{})

	if service1.Interactive() {
		dLogger.Info("Running in terminal.")
		dLogger.Infof("Valid startup parametrs: %q\n", service1.ControlAction)
	} else {
		dLogger.Info("Starting CDEK proxy service...")
	}
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) run() {
	//close db cnn
	defer func() {
		if p.rep != nil {
			p.rep.Close()
		}
	}()
	running := make(chan struct{})
	//initCancelInterrupt
	p.group.Add(
		func() error {
			select {
			case <-p.interrupt:
				return errors.New("cdekproxy: Get interrupt signal")
			case <-running:
				return nil
			}
		}, func(error) {
			close(running)
		})
	dLogger.Info("CDEK proxy started")
	dLogger.Info(p.group.Run())
	close(p.quit)
}

func (p *program) Stop(s service1.Service) error {
	// Stop should not block. Return with a few seconds.
	dLogger.Info("CDEK proxy Stopping!")
	//interrupt service
	close(p.interrupt)
	//waite service stops
	<-p.quit
	dLogger.Info("CDEK proxy stopped")
	return nil
}

func initProxy() (*group.Group, tracker.Repository, error) {
	if viper.GetString("cdek.account") == "" || viper.GetString("cdek.password") == "" {
		return nil, nil, errors.New("не заданы параметры входа в cdek")
	}
	if viper.GetString("proxy.address") == "" {
		return nil, nil, errors.New("не задан host:port для локального сервера")
	}

	logger := initLoger(viper.GetString("folders.log"), "cdekproxy")

	cli := service.DefaultHTTPClient(viper.GetDuration("cdek.timeout"))
	var uriLogger = logger
	if !viper.GetBool("debug") {
		uriLogger = nil
	}
	client, err := service.New(
		viper.GetString("cdek.host"),
		service.DefaultHTTPOptions(cli, uriLogger),
		service.DefaultMiddleware(logger, uint64(viper.GetInt("cdek.retries"))))
	if err != nil {
		return nil, nil, err
	}

	account, password := viper.GetString("cdek.account"), viper.GetString("cdek.password")
	pcfg := proxy.HandlerConfig{
		Service:  client,
		Delivery: &cdek.DeliveryFactory{Account: account, Password: password},
		Status:   &cdek.StatusReportFactory{Account: account, Password: password},
		Logger:   logger,
	}

	g := &group.Group{}

	var rep tracker.Repository
	if cnn := viper.GetString("tracker.mysql"); cnn != "" {
		rep, err = repo.New(cnn)
		if err != nil {
			return nil, nil, err
		}
		trk := tracker.New(client, pcfg.Status, rep, logger, viper.GetInt("tracker.batch"))
		pcfg.Tracker = trk
		interval := viper.GetDuration("tracker.interval")
		g.Add(func() error {
			dLogger.Info(fmt.Sprintf("Starting tracker, interval %s.", interval))
			return trk.Run(context.Background(), interval)
		}, func(error) {
			trk.Quit()
		})
	}

	server := &http.Server{
		Addr:         viper.GetString("proxy.address"),
		Handler:      proxy.NewHandler(&pcfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: viper.GetDuration("cdek.timeout") + 15*time.Second,
		IdleTimeout:  15 * 60 * time.Second,
	}
	g.Add(func() error {
		dLogger.Info(fmt.Sprintf("Starting proxy at %s.", server.Addr))
		return server.ListenAndServe()
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	})

	return g, rep, nil
}
