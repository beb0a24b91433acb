// Command preview prints the briefing wakeup would send, without sending it.
package main

import (
	"context"
	"os"

	"github.com/easton-hill/wakeup/internal/briefing"
	"github.com/easton-hill/wakeup/internal/cli"
	"github.com/easton-hill/wakeup/pkg/directions/google"
	"github.com/easton-hill/wakeup/pkg/fetch"
	"github.com/easton-hill/wakeup/pkg/mailer"
	"github.com/easton-hill/wakeup/pkg/weather/openweather"
)

func run(ctx context.Context) error {
	cfg, sec, err := cli.Setup()
	if err != nil {
		return err
	}

	fetcher := fetch.New()
	b := &briefing.Briefing{
		Weather:    openweather.New(sec, fetcher),
		Directions: google.New(sec, fetcher),
		Formatter:  cfg.Formatter(),
		Sender:     mailer.Console{W: os.Stdout},
	}
	return b.Run(ctx, cfg)
}

func main() {
	cli.Main(run)
}
