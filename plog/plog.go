// SPDX-License-Identifier: GPL-2.0-or-later

// Package plog carries the structured logger shared by the portal
// packages. The default is a nop logger so library code can log
// unconditionally; hosts install a real one at startup.
package plog

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// Set installs the process-wide logger. Passing nil restores the nop
// logger.
func Set(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

// L returns the current logger.
func L() *zap.Logger {
	return logger
}

// Development builds and installs a human-readable console logger,
// for demo binaries and debugging.
func Development() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	Set(l)
	return l
}
