package main

import (
	"bufio"
	"context"
	"ctchen222/Connect-Four/internal/bot"
	"ctchen222/Connect-Four/internal/client"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/logger"
	"ctchen222/Connect-Four/internal/player"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

type options struct {
	addr       string
	difficulty string
	think      time.Duration
	rules      game.Rules
	logLevel   string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "connect-four-client: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := options{rules: game.DefaultRules()}

	fs := flag.NewFlagSet("connect-four-client", flag.ContinueOnError)
	fs.StringVarP(&opts.addr, "addr", "a", "localhost:8000", "Server address")
	fs.StringVar(&opts.difficulty, "bot", "", "Let a bot play this seat: easy, medium or hard")
	fs.DurationVar(&opts.think, "bot-think", 500*time.Millisecond, "Delay before the bot answers")
	// The board flags must match the server's.
	fs.IntVar(&opts.rules.Rows, "rows", opts.rules.Rows, "Board rows, as configured on the server")
	fs.IntVar(&opts.rules.Columns, "columns", opts.rules.Columns, "Board columns, as configured on the server")
	fs.IntVar(&opts.rules.WinLength, "win-length", opts.rules.WinLength, "Tokens in a row needed to win, as configured on the server")
	fs.StringVarP(&opts.logLevel, "log-level", "L", "warn", "Log level: debug, info, warn, error")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := opts.rules.Validate(); err != nil {
		return err
	}
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New(os.Stderr, level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := (&net.Dialer{Timeout: 5 * time.Second}).DialContext(ctx, "tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", opts.addr, err)
	}
	ch := player.NewTCPChannel(conn)
	defer ch.Close()
	context.AfterFunc(ctx, func() { _ = ch.Close() })

	tr := client.NewTerminalRenderer(os.Stdout)
	var c *client.Client
	if opts.difficulty != "" {
		br := bot.NewBotRenderer(ctx, "cli", opts.difficulty, opts.think, nil)
		c = client.New(ch, opts.rules, client.NewMultiRenderer(tr, br))
		br.Bind(c)
	} else {
		c = client.New(ch, opts.rules, tr)
		paced := !term.IsTerminal(int(os.Stdin.Fd()))
		go readColumns(ctx, os.Stdin, os.Stdout, c, tr.Turns(), paced)
	}

	fmt.Fprintf(os.Stdout, "Connected to %s.\n", opts.addr)
	_, err = c.Play(ctx)
	if err != nil && ctx.Err() == nil {
		if apperr.IsTransportFault(err) {
			return fmt.Errorf("connection lost: %w", err)
		}
		return err
	}
	return nil
}

// readColumns turns input lines into selections. Columns are typed from 1.
// When input is piped rather than typed, one line is consumed per turn.
func readColumns(ctx context.Context, in io.Reader, out io.Writer, c *client.Client, turns <-chan struct{}, paced bool) {
	scanner := bufio.NewScanner(in)
	waitTurn := paced
	for {
		if waitTurn {
			select {
			case <-turns:
			case <-ctx.Done():
				return
			}
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		waitTurn = false
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "%q is not a column number.\n", line)
			continue
		}
		switch err := c.Select(n - 1); {
		case err == nil:
			waitTurn = paced
		case errors.Is(err, apperr.ErrNotYourTurn):
			fmt.Fprintln(out, "Wait for your turn.")
		case errors.Is(err, apperr.ErrColumnFull):
			fmt.Fprintf(out, "Column %d is full, pick another: ", n)
		case errors.Is(err, apperr.ErrColumnOutOfRange):
			fmt.Fprintf(out, "No column %d, pick another: ", n)
		default:
			fmt.Fprintln(out, err)
		}
	}
}
