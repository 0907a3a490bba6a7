package utils

import (
	"os"
	"os/signal"
	"syscall"
)

func ContainsString(targetString string, sliceOfStrings []string) bool {
	for i := range sliceOfStrings {
		if sliceOfStrings[i] == targetString {
			return true
		}
	}
	return false
}

func ContainsInt(targetInt int, sliceOfInts []int) bool {
	for i := range sliceOfInts {
		if sliceOfInts[i] == targetInt {
			return true
		}
	}
	return false
}

// GetSignalChannel returns a channel that receive interrupt or termination signals
func GetSignalChannel() chan os.Signal {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	return signalChannel
}
