package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a hotseat game in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the multiplayer websocket server"`
	Simulate SimulateCmd      `cmd:"" help:"Run random self-play games and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("loveletter"),
		kong.Description("Love Letter rules engine, hotseat client, and multiplayer server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
