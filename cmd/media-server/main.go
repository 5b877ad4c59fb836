package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"connectrealm/internal/config"
	"connectrealm/internal/dbmongo"
	"connectrealm/internal/media"
)

// Standalone blob server. Runs next to the API so uploaded media is served
// straight out of GridFS without proxying through the main process.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Close(context.Background())

	blobs := dbmongo.NewBlobStorage(mongoClient, cfg.Mongo.PublicBaseURL)
	server := media.NewFileServer(blobs)

	port := os.Getenv("MEDIA_SERVER_PORT")
	if port == "" {
		port = "8081"
	}

	log.Info().Str("port", port).Msg("Media server starting")
	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.Fatal().Err(err).Msg("Media server failed")
	}
}
