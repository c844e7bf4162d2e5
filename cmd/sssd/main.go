// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/sssd/main.go
// Summary: Demo host for the settings core. Registers a sample menu against
// an in-memory loopback roster and replays a scripted interaction.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Ducstii/SSSUtility/config"
	"github.com/Ducstii/SSSUtility/router"
	"github.com/Ducstii/SSSUtility/session"
	"github.com/Ducstii/SSSUtility/settings"
	"github.com/Ducstii/SSSUtility/store"
	"github.com/Ducstii/SSSUtility/widget"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sssd",
	Short: "Shared settings surface for plugin-contributed menus",
	RunE:  runDemo,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "explicit config file path")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// loopbackClient prints every push instead of serializing it to a wire.
type loopbackClient struct {
	id   uuid.UUID
	name string
}

func (c *loopbackClient) ID() string { return c.id.String() }

func (c *loopbackClient) Push(widgets []*widget.Widget) error {
	fmt.Printf("-> %s: page of %d widgets\n", c.name, len(widgets))
	for _, w := range widgets {
		fmt.Printf("   [%d] %-9s %s\n", w.ID, w.Kind, w.Label)
	}
	return nil
}

func (c *loopbackClient) PushUpdate(u widget.Update) error {
	fmt.Printf("-> %s: widget %d %s = %q\n", c.name, u.WidgetID, u.Field, u.Value)
	return nil
}

type loopbackRoster struct {
	clients []widget.Client
}

func (r *loopbackRoster) Clients() []widget.Client { return r.clients }

func sampleMenu() *widget.Menu {
	m := widget.NewBuilder("Demo Plugin").
		Page("General").
		Button("Reset stats", "Hold to confirm", 2).
		TwoState("Announcements", "", "On", "Off", false).
		Page("Audio").
		Slider("Volume", "0-100", 0, 100, 75, true).
		Dropdown("Output", "", []string{"Speakers", "Headset"}, 0, widget.EntryRegular).
		Page("Binds").
		Keybind("Push to talk", "", 0, true).
		Build()

	m.OnButton(2, func(c widget.Client, w *widget.Widget) {
		fmt.Printf("<- %s pressed %q\n", c.ID(), w.Label)
	})
	m.OnSlider(5, func(c widget.Client, w *widget.Widget, value float64) {
		fmt.Printf("<- %s set %q to %v\n", c.ID(), w.Label, value)
	})
	return m
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	opts := settings.Options{IDBase: cfg.IDBase}
	if cfg.Database != "" {
		st, err := store.Open(cfg.Database)
		if err != nil {
			return err
		}
		opts.Store = st
	}

	alice := &loopbackClient{id: uuid.New(), name: "alice"}
	bob := &loopbackClient{id: uuid.New(), name: "bob"}
	opts.Roster = &loopbackRoster{clients: []widget.Client{alice, bob}}

	svc := settings.New(opts)
	defer svc.Shutdown()

	svc.Register("demo", sampleMenu())
	menu := svc.Menu("demo")
	fmt.Printf("registered %q with ids %d-%d (buffer v%d)\n", menu.Name, menu.Start, menu.End, svc.Version())

	svc.SendMenu(alice, "demo", 0)
	svc.HandleStatusChanged(alice, router.StatusEvent{TabOpen: true})

	// Simulated interactions: a button press, then a page switch via the
	// selector, then a slider move on the new page.
	buttonID, _ := menu.GlobalID(2)
	svc.HandleValueChanged(alice, router.ValueEvent{WidgetID: buttonID})
	svc.HandleValueChanged(alice, router.ValueEvent{WidgetID: menu.SelectorID(), Index: 1})
	sliderID, _ := menu.GlobalID(5)
	svc.HandleValueChanged(alice, router.ValueEvent{WidgetID: sliderID, Value: 40})

	svc.UpdateWidgetHint("demo", sliderID, "now 40", func(c widget.Client) bool {
		state, ok := svc.ClientState(c)
		return ok && state.Viewing()
	})

	if state, ok := svc.ClientState(alice); ok {
		fmt.Printf("alice is on page %d of %q (tab open: %v)\n", state.Page, state.Owner, state.TabOpen)
	}
	if !svc.Validate() {
		return fmt.Errorf("registry failed validation")
	}
	return nil
}

var _ session.Roster = (*loopbackRoster)(nil)
