package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zereker/bedrock"
	"github.com/Zereker/bedrock/packet"
	"github.com/spf13/cobra"
)

var errServerDisconnect = errors.New("disconnected by server")

func chatCmd() *cobra.Command {
	var (
		addr    string
		name    string
		chain   string
		skin    string
		radius  int32
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Log in, request chunks, and send a chat message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			onPacket := func(pk packet.Packet) error {
				logger.Info("received packet", "packet", pk.ID(), "payload", pk)
				if d, ok := pk.(*packet.Disconnect); ok {
					logger.Warn("server closed the session", "message", d.Message)
					return errServerDisconnect
				}
				return nil
			}

			conn, err := bedrock.Dial(ctx, addr,
				bedrock.OnPacketOption(onPacket),
				bedrock.LoggerOption(logger),
				bedrock.BufferSizeOption(4),
			)
			if err != nil {
				return err
			}

			// Login and setup go out together in one frame.
			if err = conn.Queue(&packet.Login{
				Protocol:  packet.ProtocolVersion,
				ChainData: chain,
				SkinData:  skin,
			}); err != nil {
				return err
			}
			if err = conn.Queue(&packet.ResourcePackClientResponse{Status: packet.PackResponseCompleted}); err != nil {
				return err
			}
			if err = conn.Queue(&packet.RequestChunkRadius{Radius: radius}); err != nil {
				return err
			}
			if err = conn.Flush(); err != nil {
				return err
			}

			if len(args) == 1 {
				if err = conn.Write(&packet.Text{
					Type:       packet.TextTypeChat,
					SourceName: name,
					Message:    args[0],
				}); err != nil {
					return err
				}
			}

			err = conn.Run(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "ws://127.0.0.1:19132", "server websocket URL")
	cmd.Flags().StringVar(&name, "name", "Steve", "display name used as the chat source")
	cmd.Flags().StringVar(&chain, "chain", os.Getenv("BEDROCK_CHAIN"), "encoded identity chain sent in Login")
	cmd.Flags().StringVar(&skin, "skin", os.Getenv("BEDROCK_SKIN"), "encoded client data token sent in Login")
	cmd.Flags().Int32Var(&radius, "radius", 8, "chunk radius to request")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "disconnect after this long (0 waits for a signal)")

	return cmd
}
