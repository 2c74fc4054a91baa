package main

import (
	"github.com/sgostarter/i/l"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		l.NewConsoleLoggerWrapper().WithFields(l.ErrorField(err)).Fatal("pseries failed")
	}
}
