package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	pkg "git.solsynth.dev/hypernet/circle/pkg/internal"
	"git.solsynth.dev/hypernet/circle/pkg/internal/cache"
	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _          _\n / ___(_)_ __ ___| | ___\n| |   | | '__/ __| |/ _ \\\n| |___| | | | (__| |  __/\n \\____|_|_|  \\___|_|\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Circle"), pkg.AppVersion)
	fmt.Printf("The tiny social circle in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	pkg.SetDefaultSettings()
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			log.Panic().Err(err).Msg("An error occurred when loading settings.")
		}
		log.Warn().Msg("No settings file was found, running with the default settings...")
	}
	if len(viper.GetString("security.session_secret")) == 0 {
		log.Fatal().Msg("The security.session_secret setting is required for signing sessions.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Initialize cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Prepare file storage
	if err := storage.NewStorage(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing file storage.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(viper.GetString("cleanup.schedule"), services.DoAutoOrphanCleanup); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling orphan cleanup.")
	}
	quartz.Start()

	// Server
	server := http.NewServer()
	go server.Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
}
