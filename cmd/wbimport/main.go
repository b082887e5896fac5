// Command wbimport importa un reporte de stock de Wildberries (.xlsx).
//
//	wbimport -file <ruta>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jhoicas/Atelier-api/internal/bootstrap"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func main() {
	path := flag.String("file", "", "ruta del reporte .xlsx")
	user := flag.String("user", "cli", "quién sube el archivo")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*path, *user); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(path, user string) error {
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

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := svc.WBImport.ImportStocks(ctx, filepath.Base(path), user, f)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s: %s\n", res.FileID, res.Status, res.Summary)
	return nil
}
