package main

import (
	"fmt"
	"os"
	"path"
	"time"

	log "github.com/go-kit/kit/log"
	"github.com/kardianos/osext"
	"github.com/spf13/viper"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func initLoger(logPath, fileName string) log.Logger {
	var logger log.Logger
	if logPath == "" {
		logger = log.NewLogfmtLogger(os.Stderr)
	} else {
		if fileName == "" {
			fileName = "log"
		}
		p := path.Join(logPath, fmt.Sprintf("%s.log", fileName))
		logger = log.NewLogfmtLogger(&lumberjack.Logger{
			Filename:   p,
			MaxSize:    5, // megabytes
			MaxBackups: 5,
			MaxAge:     60, //days
		})
	}
	logger = log.With(logger, "ts", log.DefaultTimestamp)
	logger = log.With(logger, "caller", log.DefaultCaller)

	return logger
}

//readConfig init/read viper config
func readConfig() error {
	viper.SetDefault("folders.log", ".\\log") //Log folder
	viper.SetDefault("debug", false)
	viper.SetDefault("proxy.address", ":8081") //localhost
	viper.SetDefault("cdek.host", "http://gw.edostavka.ru:11443")
	viper.SetDefault("cdek.account", "")
	viper.SetDefault("cdek.password", "")
	viper.SetDefault("cdek.timeout", 30*time.Second)
	viper.SetDefault("cdek.retries", 3)
	viper.SetDefault("tracker.mysql", "") //empty - tracker disabled
	viper.SetDefault("tracker.interval", 30*time.Minute)
	viper.SetDefault("tracker.batch", 100)

	path, err := osext.ExecutableFolder()
	if err != nil {
		path = "."
	}
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}
