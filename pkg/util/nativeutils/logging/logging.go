// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InitLog points the standard logger at out with the given level and
// format ("json" or text).
func InitLog(out io.Writer, level, format string) {
	log.SetOutput(out)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}

	// apply logger level from configurations
	SetToLevel(level)
}

// SetToLevel falls back to trace if l cannot be parsed.
func SetToLevel(l string) {
	level, err := log.ParseLevel(l)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.TraceLevel)
		log.Warnf("Parse logger level from config err: %v", err)
	}
}

// OpenOutput resolves the logger.output setting: "stdout" (or empty) logs
// to the console, anything else is a file prefix completed with ".log".
func OpenOutput(output string) (io.WriteCloser, error) {
	if output == "" || output == "stdout" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.OpenFile(output+".log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open log file %s.log", output)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
