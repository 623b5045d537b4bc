// orderwatch is a terminal order tracker: it follows a single order the
// same way the guest tracking page does, printing each status change and
// exiting once the order reaches a terminal status.
package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/qrdine/qr-menu/client"
	"github.com/qrdine/qr-menu/config"
	"github.com/qrdine/qr-menu/models"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 2 {
		log.Fatal("usage: orderwatch <order-id>")
	}
	orderID, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil || orderID == 0 {
		log.Fatalf("invalid order id %q", os.Args[1])
	}

	cfg := config.Load()

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	api := client.New(baseURL)

	done := make(chan struct{}, 1)
	lastStatus := ""

	watcher := client.NewOrderWatcher(api, uint(orderID), cfg.GuestPollInterval)
	watcher.OnUpdate = func(order models.Order) {
		if order.Status != lastStatus {
			lastStatus = order.Status
			log.Infof("order #%d table %d: %s (total %.2f)",
				order.ID, order.Table.Number, order.Status, order.TotalPrice)
		}
		if models.IsTerminalStatus(order.Status) {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}
	watcher.OnError = func(err error) {
		log.Warnf("poll failed, retrying on next tick: %v", err)
	}

	watcher.Start()
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.Infof("order #%d reached %s", orderID, lastStatus)
	case <-sig:
		log.Info("shutting down")
	}
}
