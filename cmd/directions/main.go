// Command directions prints the commute section only.
package main

import (
	"context"
	"os"

	"github.com/easton-hill/wakeup/internal/briefing"
	"github.com/easton-hill/wakeup/internal/cli"
	"github.com/easton-hill/wakeup/pkg/directions/google"
	"github.com/easton-hill/wakeup/pkg/fetch"
	"github.com/easton-hill/wakeup/pkg/mailer"
)

func run(ctx context.Context) error {
	cfg, sec, err := cli.Setup()
	if err != nil {
		return err
	}
	cfg.Mail.SubjectPrefix = "Commute for"

	b := &briefing.Briefing{
		Directions: google.New(sec, fetch.New()),
		Sender:     mailer.Console{W: os.Stdout},
	}
	return b.Run(ctx, cfg)
}

func main() {
	cli.Main(run)
}
