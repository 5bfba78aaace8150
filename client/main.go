package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/words"
)

func main() {
	addr := flag.String("addr", "localhost:3000", "server address")
	flag.Parse()

	logger.Init(true)
	defer logger.Sync()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	logger.Log.Infof("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	st := &state{}
	replies := make(chan *network.Packet, 16)
	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				logger.Log.Infof("Read error: %v", err)
				return
			}
			packet, err := network.Decode(message)
			if err != nil {
				logger.Log.Warnf("Received invalid frame: %v", err)
				continue
			}
			logger.Log.Infof("<- %s %s", packet.Event, string(packet.Data))
			replies <- packet
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	logger.Log.Infof("Categories: %s", strings.Join(words.Default().Categories(), ", "))
	logger.Log.Info("Commands: /create <category>, /join <code>, /leave, /details, /start, /prompt, /name <username>; anything else is chat.")

	for {
		select {
		case <-done:
			return
		case packet := <-replies:
			event, payload := st.observe(packet, func(v interface{}) error { return json.Unmarshal(packet.Data, v) })
			if event == "" {
				continue
			}
			if err := send(c, event, payload); err != nil {
				logger.Log.Errorf("Write error: %v", err)
				return
			}
			logger.Log.Infof("-> %s", event)
		case <-interrupt:
			logger.Log.Info("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				logger.Log.Warnf("Write close error: %v", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			event, payload, err := st.parseLine(line)
			if err != nil {
				logger.Log.Warn(err)
				continue
			}
			if err := send(c, event, payload); err != nil {
				logger.Log.Errorf("Write error: %v", err)
				return
			}
			logger.Log.Infof("-> %s", event)
		}
	}
}

// send writes one event envelope as a text frame.
func send(c *websocket.Conn, event string, payload interface{}) error {
	frame, err := network.Encode(event, payload)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, frame)
}
