// boardwatch is a terminal staff board: it polls the order API the same
// way the web dashboard does and rings the terminal bell when new orders
// arrive.
package main

import (
	"fmt"
	"os"
	"os/signal"
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

	cfg := config.Load()

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}
	token := os.Getenv("STAFF_TOKEN")
	if token == "" {
		log.Fatal("STAFF_TOKEN is required")
	}

	api := client.New(baseURL)
	api.Token = token

	watcher := client.NewBoardWatcher(api, os.Getenv("STATUS_FILTER"), cfg.StaffPollInterval)
	watcher.OnSnapshot = func(orders []models.Order) {
		counts := map[string]int{}
		for _, order := range orders {
			counts[order.Status]++
		}
		log.Infof("%d orders | pending=%d placed=%d preparing=%d ready=%d served=%d canceled=%d",
			len(orders), counts[models.StatusPending], counts[models.StatusPlaced],
			counts[models.StatusPreparing], counts[models.StatusReady],
			counts[models.StatusServed], counts[models.StatusCanceled])
		for _, order := range orders {
			log.Infof("  #%d table %d %-9s %6.2f", order.ID, order.Table.Number, order.Status, order.TotalPrice)
		}
	}
	watcher.OnNewOrders = func(count, previous int) {
		fmt.Print("\a") // terminal bell, the dashboard's new-order chime
		log.Infof("new orders arrived (%d -> %d)", previous, count)
	}
	watcher.OnError = func(err error) {
		log.Warnf("poll failed, retrying on next tick: %v", err)
	}

	watcher.Start()
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}
