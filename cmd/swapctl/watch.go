package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/tinychain/swap-contract/rpc/swap"
	"go.uber.org/zap"
)

const swapSuccessEvent = "SwapSuccess"

func runWatch(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	swapHash, err := swapContract(e.cfg)
	if err != nil {
		return err
	}

	c, err := rpcclient.NewWS(ctx, wsEndpoint(e.cfg.RPC.Endpoint), rpcclient.WSOptions{
		Options: rpcclient.Options{
			DialTimeout:    e.cfg.RPC.DialTimeout,
			RequestTimeout: e.cfg.RPC.RequestTimeout,
		},
	})
	if err != nil {
		return fmt.Errorf("WS client dial: %w", err)
	}
	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("WS client init: %w", err)
	}

	var (
		name = swapSuccessEvent
		ch   = make(chan *state.ContainedNotificationEvent)
	)

	id, err := c.ReceiveExecutionNotifications(&neorpc.NotificationFilter{
		Contract: &swapHash,
		Name:     &name,
	}, ch)
	if err != nil {
		return fmt.Errorf("subscribe to %s notifications: %w", name, err)
	}

	e.log.Info("watching swaps", zap.Stringer("contract", swapHash))

	for {
		select {
		case <-ctx.Done():
			_ = c.Unsubscribe(id)
			return nil
		case ev, ok := <-ch:
			if !ok {
				return errors.New("notification channel closed, connection lost")
			}
			err = handleSwapNotification(e.log, ev)
			if err != nil {
				e.log.Warn("invalid notification", zap.Stringer("tx", ev.Container), zap.Error(err))
			}
		}
	}
}

// handleSwapNotification logs SwapSuccess notification.
func handleSwapNotification(l *zap.Logger, ev *state.ContainedNotificationEvent) error {
	if ev.Name != swapSuccessEvent {
		return fmt.Errorf("unexpected notification %q", ev.Name)
	}

	var s swap.SwapSuccessEvent
	err := s.FromStackItem(ev.Item)
	if err != nil {
		return err
	}

	logSwap(l, ev.Container, &s)
	return nil
}

func logSwap(l *zap.Logger, tx util.Uint256, s *swap.SwapSuccessEvent, fields ...zap.Field) {
	l.Info("swap", append([]zap.Field{
		zap.Stringer("tx", tx),
		zap.String("from", address.Uint160ToString(s.FromAccount)),
		zap.Stringer("from amount", s.FromAmount),
		zap.String("to", address.Uint160ToString(s.ToAccount)),
		zap.Stringer("to amount", s.ToAmount),
	}, fields...)...)
}
