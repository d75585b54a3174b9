//go:build !linux
// +build !linux

package main

import (
	"errors"
)

func openLiveSource(config) (frameSource, error) {
	return nil, errors.New("live capture is only supported on linux")
}
