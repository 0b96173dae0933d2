// Command bspwmd is the window manager daemon: it claims the
// substructure-redirect role on the X11 root window, drives the tiling
// tree, and serves the bspc command socket. Every mutation of the
// in-memory world funnels through one buffered channel drained by a
// single goroutine, so the event pump, the RandR watcher, the ipc
// server, and the animation ticker never touch world concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/rotkonetworks/bspwm1/animate"
	"github.com/rotkonetworks/bspwm1/common"
	"github.com/rotkonetworks/bspwm1/ipc"
	"github.com/rotkonetworks/bspwm1/wm"
	"github.com/rotkonetworks/bspwm1/xserver"
)

// supportedAtoms is the _NET_SUPPORTED list this daemon advertises,
// restricted to the EWMH properties it actually reads or writes
// elsewhere in xserver (BatchEWMHUpdate, SetActiveWindow, SetWmDesktop).
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to bspwm1.yaml (defaults to ~/.config/bspwm1/bspwm1.yaml)")
	socketOverride := flag.String("socket", "", "override the bspc command socket path")
	flag.Parse()

	logger := common.NewLogger()
	logger.WithFields(map[string]any{"name": common.Build.Name, "version": common.Build.Version}).Info("starting")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *socketOverride != "" {
		cfg.SocketPath = *socketOverride
	}

	conn, err := xserver.Connect(10, time.Second)
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	if err := conn.Acquire(); err != nil {
		return err
	}
	if err := conn.PublishIdentity(common.Build.Name, supportedAtoms); err != nil {
		return fmt.Errorf("publish EWMH identity: %w", err)
	}
	defer conn.Close()

	world := wm.NewWorld(cfg)
	conn.ReconcileMonitors(world)

	if existing, err := conn.QueryExistingWindows(); err != nil {
		logger.WithError(err).Warn("failed to query existing windows")
	} else {
		bootstrapExisting(world, conn, existing)
	}

	socketPath, err := ipc.SocketPath(cfg.SocketPath)
	if err != nil {
		return err
	}
	status := ipc.NewStatus()
	server, err := ipc.Listen(socketPath, status)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer server.Close()
	logger.WithField("socket", socketPath).Info("listening")

	commands := make(chan func(*wm.World), 64)
	d := &daemon{commands: commands, conn: conn, quit: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := server.Serve(ctx, d.handle); err != nil {
			logger.WithError(err).Warn("ipc server stopped")
		}
	}()

	pump := xserver.NewPump(conn, commands)
	pump.Status = status
	go pump.Run()
	go conn.MonitorEvents(commands)

	anims := animate.NewSet(cfg.AnimationEnabled, int64(cfg.AnimationDurationMs))
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			commands <- func(w *wm.World) {
				anims.Tick(xserver.Mover{C: conn}, time.Now().UnixMilli())
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case cmd := <-commands:
			cmd(world)
		case <-d.quit:
			logger.Info("quit command received")
			return nil
		case s := <-sig:
			logger.WithField("signal", s).Info("shutting down")
			return nil
		}
	}
}

func loadConfig(path string) (*common.Config, error) {
	if path == "" {
		p, err := common.DefaultConfigPath()
		if err != nil {
			return common.Default(), nil
		}
		path = p
	}
	return common.Load(path)
}

// bootstrapExisting manages every window already mapped at startup,
// exactly as a fresh MapRequest would — this module keeps no state
// across a restart (SPEC_FULL's "no persisted state" external
// interface), so re-synthesizing Client/Node state from the live root
// window tree is the only recovery path.
func bootstrapExisting(world *wm.World, conn *xserver.Conn, windows []xproto.Window) {
	for _, win := range windows {
		if world.Mon == nil {
			return
		}
		client := conn.NewClient(win)
		leaf := wm.Manage(world, world.Mon, client)
		if leaf == nil {
			continue
		}
		conn.SetWmDesktop(win, 0)
	}
	if world.Mon != nil && world.Mon.Desk != nil {
		for _, pl := range world.Arrange(world.Mon, world.Mon.Desk) {
			if pl.Node.Client == nil {
				continue
			}
			(xserver.Mover{C: conn}).MoveResize(pl.Node.Client.Window, pl.Rect)
		}
		conn.BatchEWMHUpdate(world)
	}
}
