package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"movietier/internal/omdb"
	"movietier/pkg/models"
	"movietier/pkg/utils"
)

// omdb-mirror serves a JSON movie catalog with the OMDB query interface.
// Point MOVIETIER_OMDB_BASE_URL at it to develop without an API key.
func main() {
	var (
		addr    = flag.String("addr", ":9000", "listen address")
		data    = flag.String("data", "data/movies.json", "catalog: JSON array of {imdbId,title,year,posterUrl}")
		apiKey  = flag.String("apikey", "", "require this apikey parameter")
		logJSON = flag.Bool("log-json", false, "log as JSON")
	)
	flag.Parse()

	format := "text"
	if *logJSON {
		format = "json"
	}
	logger := utils.NewLogger("info", format)

	b, err := os.ReadFile(*data)
	if err != nil {
		logger.WithError(err).Fatal("read catalog")
	}
	var catalog []models.Movie
	if err := json.Unmarshal(b, &catalog); err != nil {
		logger.WithError(err).Fatal("catalog is not a JSON array of movies")
	}
	for i, m := range catalog {
		if err := m.Validate(); err != nil {
			logger.WithError(err).WithField("index", i).Fatal("invalid catalog entry")
		}
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           omdb.MirrorHandler(catalog, *apiKey),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.WithFields(map[string]any{"addr": *addr, "movies": len(catalog)}).Info("omdb-mirror listening")
	logger.WithError(srv.ListenAndServe()).Fatal("omdb-mirror stopped")
}
