package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flightagent/config"
	"flightagent/models"
	"flightagent/services/agent"
	"flightagent/services/booking"
	ai "flightagent/services/intelligence"
	"flightagent/services/marketplace"
	"flightagent/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gemini, err := ai.NewGeminiClient(ctx,
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		int32(config.AppConfig.GeminiMaxOutputTokens),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}
	parser := &ai.Parser{Completer: gemini, Logger: logger}

	duffel := marketplace.NewDuffelClient(
		config.AppConfig.DuffelBaseURL,
		config.AppConfig.DuffelAPIKey,
		config.AppConfig.DuffelRequestsPerSec,
		logger,
	)
	bookingService := &booking.DefaultBookingService{
		Marketplace: duffel,
		Logger:      logger,
	}

	traveler := models.Passenger{
		PhoneNumber: config.AppConfig.TravelerPhoneNumber,
		Email:       config.AppConfig.TravelerEmail,
		Title:       config.AppConfig.TravelerTitle,
		Gender:      config.AppConfig.TravelerGender,
		FamilyName:  config.AppConfig.TravelerFamilyName,
		GivenName:   config.AppConfig.TravelerGivenName,
		BornOn:      config.AppConfig.TravelerBornOn,
		Type:        config.AppConfig.TravelerType,
	}

	session := &agent.Session{
		Parser:   parser,
		Booking:  bookingService,
		Traveler: traveler,
		In:       os.Stdin,
		Out:      os.Stdout,
		Logger:   logger,
	}

	logger.Sugar().Info("flight agent ready; type :q, quit or exit to leave")
	if err := session.Run(ctx); err != nil {
		logger.Sugar().Fatalf("main: session terminated: %v", err)
	}
}
