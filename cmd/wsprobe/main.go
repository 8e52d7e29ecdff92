// Command main is a development client for the notification WebSocket. It
// exchanges a JWT for a single-use ticket, connects and prints every event.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	base := flag.String("base", "http://localhost:8000", "API base URL")
	token := flag.String("token", "", "JWT bearer token")
	flag.Parse()

	if *token == "" {
		log.Fatal("-token is required")
	}

	ticket, err := fetchTicket(*base, *token)
	if err != nil {
		log.Fatalf("Failed to obtain WebSocket ticket: %v", err)
	}

	wsURL, err := buildWSURL(*base, ticket)
	if err != nil {
		log.Fatalf("Invalid base URL: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("WebSocket dial failed: %v", err)
	}
	defer conn.Close()

	log.Printf("Connected to %s", wsURL)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			fmt.Println(string(message))
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func fetchTicket(base, token string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, base+"/api/ws/ticket", bytes.NewReader(nil))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket request returned %s", resp.Status)
	}

	var body struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Ticket == "" {
		return "", fmt.Errorf("empty ticket in response")
	}
	return body.Ticket, nil
}

func buildWSURL(base, ticket string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/ws/"
	u.RawQuery = "ticket=" + url.QueryEscape(ticket)
	return u.String(), nil
}
