package cmd

import (
	"github.com/achilleasa/bsptrace/log"
	"github.com/urfave/cli"
)

var logger = log.New("bsptrace")

func setupLogging(ctx *cli.Context) error {
	if levelName := ctx.GlobalString("log-level"); levelName != "" {
		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return nil
}
