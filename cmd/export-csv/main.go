package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"movietier/internal/tierlist"
	"movietier/pkg/database"
	"movietier/pkg/utils"
)

func main() {
	var (
		id  = flag.String("id", "", "tier list id to export (required)")
		out = flag.String("out", "", "output CSV path (default stdout)")
	)
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.SetOutput(os.Stderr)

	if *id == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.OpenAndMigrate(ctx, database.DefaultConfig(cfg.DBPath))
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer db.Close()

	tl, err := tierlist.NewRepo(db).Get(ctx, *id)
	if err != nil {
		logger.WithError(err).Fatal("load tier list")
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			logger.WithError(err).Fatal("create output dir")
		}
		f, err := os.Create(*out)
		if err != nil {
			logger.WithError(err).Fatal("create output file")
		}
		defer f.Close()
		w = f
	}

	if err := tierlist.WriteCSV(w, tl); err != nil {
		logger.WithError(err).Fatal("write csv")
	}
	logger.WithFields(logrus.Fields{"id": tl.ID, "movies": tl.Count()}).Info("exported tier list")
}
