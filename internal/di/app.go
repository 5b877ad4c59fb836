package di

import (
	"gorm.io/gorm"

	"connectrealm/internal/api"
	"connectrealm/internal/config"
	"connectrealm/internal/realtime"
	"connectrealm/internal/story"
)

// Application bundles everything main needs to serve traffic.
type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Server  *api.Server
	Stories story.StoryService
	Hub     *realtime.Hub
}
