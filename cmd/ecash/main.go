// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// Version of the ecash tool.
const Version = "0.1.0"

var log = logrus.WithFields(logrus.Fields{
	"app":    "ecash",
	"prefix": "main",
})

func newApp() *cli.App {
	app := cli.NewApp()
	app.Copyright = "Copyright (c) 2020 DUSK"
	app.Name = "ecash"
	app.Usage = "Anonymous digital cash with cut-and-choose blind signatures"
	app.Author = "DUSK 2020"
	app.Version = semver.MustParse(Version).String()
	app.Flags = GlobalFlags
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generates an authority key pair and writes it to a file",
			Flags:  KeygenFlags,
			Action: keygenAction,
		},
		{
			Name:    "simulate",
			Aliases: []string{"sim"},
			Usage:   "withdraws a coin, spends it at several merchants and deposits every payment",
			Flags:   SimulateFlags,
			Action:  simulateAction,
		},
		{
			Name:   "detect",
			Usage:  "compares two disclosures of a coin and names the cheater",
			Flags:  DetectFlags,
			Action: detectAction,
		},
	}
	return app
}

func main() {
	defer handlePanic()

	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		log.WithError(fmt.Errorf("%+v", r)).Errorln("Application panic")
		os.Exit(2)
	}
}
