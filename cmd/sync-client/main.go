package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"movietier/internal/sync"
	"movietier/pkg/utils"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	list := flag.String("tierlist", "", "only print events for this tier list id")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	maxWait := flag.Duration("max-backoff", 30*time.Second, "longest pause between reconnects")
	flag.Parse()

	logger := utils.NewLogger("info", "text")
	logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = *maxWait
	bo.MaxElapsedTime = 0

	op := func() error {
		err := run(ctx, *addr, *list, *pretty, os.Stdout, logger, bo.Reset)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.WithError(err).WithField("retry_in", wait.Round(time.Millisecond)).Warn("sync-client disconnected")
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("sync-client stopped")
	}
}

// run streams events until the connection drops. onConnect is called once
// the dial succeeds so the reconnect delay starts over.
func run(ctx context.Context, addr, list string, pretty bool, out io.Writer, logger *logrus.Logger, onConnect func()) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	onConnect()
	logger.WithField("addr", addr).Info("sync-client connected")

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printEvent(out, sc.Bytes(), list, pretty)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func printEvent(out io.Writer, line []byte, list string, pretty bool) {
	var ev sync.TierListEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.TierListID == "" {
		// welcome banners and anything unparseable pass through untouched
		if list == "" {
			fmt.Fprintln(out, string(line))
		}
		return
	}
	if list != "" && ev.TierListID != list {
		return
	}
	if !pretty {
		fmt.Fprintln(out, string(line))
		return
	}
	b, _ := json.MarshalIndent(ev, "", "  ")
	fmt.Fprintln(out, string(b))
}
