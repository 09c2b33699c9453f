package bootstrap

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/siteforge/draftsvc/config"
)

// knownEnvironments is the closed set of values APP_ENV is expected to
// take; anything else still runs, but gets logged so a typo'd env var
// doesn't silently leave the process in debug mode.
var knownEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// ConfigureRuntime sets gin's mode from the app's environment taxonomy
// (config.AppConfig.Environment), generalizing the teacher's single
// production-vs-not SetGinMode check into this service's three-environment
// set: only "development" runs gin in debug mode, "staging" and
// "production" both run release mode.
func ConfigureRuntime(app config.AppConfig) {
	if !knownEnvironments[app.Environment] {
		log.Printf("bootstrap: unrecognized APP_ENV %q, defaulting to release mode", app.Environment)
		gin.SetMode(gin.ReleaseMode)
		return
	}
	if app.Environment == "development" {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
