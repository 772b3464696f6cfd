package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/config"
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/core"
	"github.com/lixenwraith/offwall/engine"
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	envFlag    = flag.String("env", config.DefaultEnvFile, "dotenv file loaded before OFFWALL_* overrides")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	feedFlag   = flag.String("feed", "", "Serve the score feed on this address, e.g. 127.0.0.1:7777")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	dumpFlag   = flag.Bool("print-config", false, "Print the effective config as TOML and exit")
)

func main() {
	flag.Parse()

	if err := config.LoadEnvFile(*envFlag); err != nil {
		fmt.Fprintf(os.Stderr, "offwall: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "offwall: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	if *dumpFlag {
		if err := cfg.Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "offwall: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "offwall: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override every other config source
func applyFlags(cfg *config.Config) {
	if *debugFlag {
		cfg.Debug = true
	}
	if *feedFlag != "" {
		cfg.Feed.Enabled = true
		cfg.Feed.Address = *feedFlag
	}
}

func run(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	// Normal exit terminal cleanup; crashes go through core.HandleCrash
	defer screen.Fini()
	core.RegisterScreen(screen)
	defer core.RegisterScreen(nil)

	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	g, err := newGame(cfg, screen, engine.NewMonotonicTimeProvider())
	if err != nil {
		return err
	}
	defer g.close()
	g.sound.SetMuted(*muteFlag)

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	stepTicker := time.NewTicker(constants.StepPollInterval)
	defer stepTicker.Stop()
	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	g.draw()

	for {
		select {
		case ev := <-eventChan:
			if !g.handle(ev) {
				log.Printf("quit")
				return nil
			}

		case <-stepTicker.C:
			g.step()

		case <-frameTicker.C:
			g.draw()

		case sig := <-sigChan:
			log.Printf("signal %s", sig)
			return nil
		}
	}
}
