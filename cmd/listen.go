package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deliverly/ordertray/internal/alerting"
	"github.com/deliverly/ordertray/internal/colors"
	"github.com/deliverly/ordertray/internal/config"
	"github.com/deliverly/ordertray/internal/dispatch"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/realtime"
	"github.com/deliverly/ordertray/internal/router"
	"github.com/deliverly/ordertray/internal/store"
	"github.com/deliverly/ordertray/internal/toast"
	"github.com/deliverly/ordertray/internal/tui"
)

const listenCommandLong = `Connect to the order-event feed and keep the local inbox in sync.

Runs in the foreground. Incoming events are routed into the notification
inbox, toasts are surfaced on the terminal, and the inbox snapshot is
persisted so other commands can inspect it.

USAGE:
    ordertray listen [OPTIONS]

OPTIONS:
    --tui       Open the interactive inbox instead of line output
    -h, --help  Show this help`

// trayClient adapts the running synchronization layer to the inbox TUI.
type trayClient struct {
	store   *store.Store
	manager *realtime.Manager
	queue   *toast.Queue
}

func (c *trayClient) Notifications() []domain.Notification { return c.store.Notifications() }
func (c *trayClient) UnreadCount() int                     { return c.store.UnreadCount() }
func (c *trayClient) ConnectionStatus() string             { return c.manager.Status().String() }
func (c *trayClient) Acknowledge(id string) error          { return c.manager.Acknowledge(id) }
func (c *trayClient) Dismiss(id string)                    { c.queue.Dismiss(id) }
func (c *trayClient) MarkAllRead()                         { c.store.MarkAllRead() }

// NewListenCmd creates the listen command.
func NewListenCmd() *cobra.Command {
	var withTUI bool

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Connect to the order-event feed and keep the inbox in sync",
		Long:  listenCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			viewer, err := viewerFromConfig()
			if err != nil {
				return err
			}
			st, storage, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer storage.Close()

			loop := dispatch.NewLoop()
			defer loop.Close()

			rdb := newRedisClient()
			defer rdb.Close()

			// Terminal alerts go to stdout, or nowhere when the TUI owns
			// the screen.
			alertOut := io.Writer(os.Stdout)
			if withTUI {
				alertOut = io.Discard
			}
			alerter := alerting.NewTerminal(alertOut)

			queue := toast.NewQueue(loop, st, alertPresenter{alerter: alerter},
				toast.WithDurations(
					config.GetDuration("toast_duration_elevated", toast.DurationElevated),
					config.GetDuration("toast_duration_default", toast.DurationDefault),
				))
			rt := router.New(loop, st, newOrderCache(rdb), alerter,
				func() domain.Viewer { return viewer })

			prefix := config.Get("channel_prefix", "ordertray")
			manager := realtime.NewManager(
				loop,
				realtime.NewFileCredentialStore(config.Get("token_path", "")),
				func() realtime.Channel { return realtime.NewRedisChannel(rdb, prefix) },
				rt.Handle,
				st,
				alerter,
				realtime.WithRetryDelay(config.GetDuration("reconnect_delay", realtime.DefaultRetryDelay)),
				realtime.WithMaxAttempts(config.GetInt("reconnect_max_attempts", realtime.DefaultMaxAttempts)),
				realtime.WithHeartbeatInterval(config.GetDuration("heartbeat_interval", 30*time.Second)),
				realtime.WithSignals(realtime.Signals{
					Connected: func() {
						colors.LogInfo("connected to order-event feed")
					},
					Disconnected: func(reason string) {
						console.Warning("disconnected from order-event feed: " + reason)
					},
					Reconnecting: func(attempt int) {
						colors.Debug("reconnecting to order-event feed")
					},
				}),
			)
			manager.EnsureConnected(viewer)
			defer manager.Teardown()

			if withTUI {
				client := &trayClient{store: st, manager: manager, queue: queue}
				return tui.Run(client, st.Subscribe)
			}

			colors.LogInfo("listening for order events; press Ctrl-C to stop")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	listenCmd.Flags().BoolVar(&withTUI, "tui", false, "Open the interactive inbox")
	return listenCmd
}

func init() {
	rootCmd.AddCommand(NewListenCmd())
}
