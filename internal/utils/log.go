// Package utils
package utils

import (
	"log"
	"os"
	"sync"
)

var (
	logger  *log.Logger
	once    sync.Once
	logFile = "indicators.log"
)

// SetLogFile changes the file GetLogger appends to. It has no effect once the
// logger has been created.
func SetLogFile(path string) {
	if path != "" {
		logFile = path
	}
}

func GetLogger() *log.Logger {
	once.Do(func() {
		file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		logger = log.New(file, "Indicators: ", log.LstdFlags)
	})
	return logger
}
