// Command writeoff descarga los materiales de una partida según su ficha técnica.
//
//	writeoff -batch <id> -location <id>
//
// Imprime el id del asiento creado; ante un error imprime el mensaje y sale con código 1.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Atelier-api/internal/bootstrap"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func main() {
	batchID := flag.String("batch", "", "id de la partida")
	locationID := flag.String("location", "", "id de la ubicación de origen")
	flag.Parse()

	if *batchID == "" || *locationID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*batchID, *locationID); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(batchID, locationID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name, Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeStorage, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	entry, err := svc.WriteOff.WriteOff(ctx, batchID, locationID)
	if err != nil {
		return err
	}
	fmt.Println(entry.ID)
	return nil
}
