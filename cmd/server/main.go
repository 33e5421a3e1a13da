package main

import (
	"flag"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/limaJavier/schedulease/pkg/config"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
)

func main() {
	addrPtr := flag.String("addr", ":8080", "Address the HTTP server listens on")
	configPtr := flag.String("config", "", "Path to config.json (defaults to the one next to the executable)")
	fixturesPtr := flag.String("fixtures", "", "Serve section data from <dir>/<COURSE>.json instead of the registration server")
	releasePtr := flag.Bool("release", false, "Run gin in release mode")
	flag.Parse()

	if *releasePtr {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Resolve(*configPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	location, err := time.LoadLocation(cfg.Calendar.Location)
	if err != nil {
		log.Fatalf("invalid calendar location: %v", err)
	}

	var (
		fetcher   registration.Fetcher
		suggester courseSuggester
	)
	if *fixturesPtr != "" {
		fetcher = registration.NewFileFetcher(*fixturesPtr)
	} else {
		client := registration.NewClient(cfg.ClientConfig())
		fetcher, suggester = client, client
	}

	api := &server{
		enumerator: model.NewEnumerator(fetcher, cfg.EnumeratorConfig()),
		suggester:  suggester,
		term:       cfg.Term,
		weeks:      cfg.Calendar.Weeks,
		location:   location,
		now:        time.Now,
	}

	log.Printf("listening on %v (term %v)", *addrPtr, cfg.Term)
	if err := newRouter(api).Run(*addrPtr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
