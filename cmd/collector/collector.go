package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Deepthi2006/aquasentry/internal/config"
	"github.com/Deepthi2006/aquasentry/internal/repository"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting AquaSentry collector...")

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.Load()

	repo, err := repository.NewJSONTankRepository(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	archive, err := repository.NewReadingArchive(cfg.ArchiveDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize readings archive: %v", err)
	}
	defer archive.Close()

	if last, err := archive.LastSnapshotTime(); err != nil {
		log.Printf("Could not read last snapshot time: %v", err)
	} else if !last.IsZero() {
		log.Printf("Last snapshot recorded at %s", last.Format("2006-01-02 15:04:05"))
	}

	snapshot := func() {
		if _, err := repo.Reload(); err != nil {
			log.Printf("Error reloading tank data: %v", err)
			return
		}
		tanks, err := repo.ListTanks()
		if err != nil {
			log.Printf("Error listing tanks: %v", err)
			return
		}
		if err := archive.SaveSnapshot(tanks, time.Now()); err != nil {
			log.Printf("Error saving snapshot: %v", err)
			return
		}
		log.Printf("Snapshot saved for %d tanks", len(tanks))
	}

	// Take one snapshot at startup so a fresh archive is never empty
	snapshot()

	c := cron.New()
	if _, err := c.AddFunc(cfg.SnapshotSchedule, snapshot); err != nil {
		log.Fatalf("Invalid snapshot schedule %q: %v", cfg.SnapshotSchedule, err)
	}
	c.Start()
	log.Printf("Snapshot job scheduled with spec %q", cfg.SnapshotSchedule)

	// Run until interrupted
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Stopping collector...")
	<-c.Stop().Done()
}
