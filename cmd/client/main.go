package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:           "storyweave-client",
		Short:         "Terminal client for the collaborative story writing server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8000", "server host:port")
	return cmd
}

func run(addr string) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/api/v1/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", u.String(), err)
	}
	defer conn.Close()

	r := newRenderer(os.Stdout)

	// Server frames print as they arrive, including unprompted story updates.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				r.disconnected()
				return
			}
			r.frame(data)
		}
	}()

	// Everything typed goes to the server as one frame per line.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return nil
			}
		}
	}
}
