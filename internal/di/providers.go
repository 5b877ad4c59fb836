package di

import (
	"time"

	"connectrealm/internal/common"
	"connectrealm/internal/config"
	"connectrealm/internal/dbmongo"
)

func provideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)
}

func provideBlobStorage(client *dbmongo.MongoClient, cfg *config.Config) *dbmongo.BlobStorage {
	return dbmongo.NewBlobStorage(client, cfg.Mongo.PublicBaseURL)
}
