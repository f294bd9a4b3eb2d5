package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"movietier/internal/tierlist"
	"movietier/pkg/database"
	"movietier/pkg/models"
	"movietier/pkg/utils"
)

func main() {
	var (
		in    = flag.String("in", "", "input CSV path (required)")
		name  = flag.String("name", "Imported list", "name of the new tier list")
		owner = flag.String("owner", "", "optional owner user id")
	)
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if *in == "" {
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

	f, err := os.Open(*in)
	if err != nil {
		logger.WithError(err).Fatal("open csv")
	}
	defer f.Close()

	tl, err := models.NewTierList(*name, *owner)
	if err != nil {
		logger.WithError(err).Fatal("new tier list")
	}
	if tl, err = tierlist.ReadCSV(f, tl); err != nil {
		logger.WithError(err).Fatal("read csv")
	}
	if tl, err = tierlist.NewRepo(db).Create(ctx, tl); err != nil {
		logger.WithError(err).Fatal("save tier list")
	}

	logger.WithFields(logrus.Fields{"id": tl.ID, "movies": tl.Count()}).Info("imported tier list")
}
