package config

import (
	"time"

	"github.com/pzillo/landing/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Storage   Storage
	Admin     Admin
	Defaults  Defaults
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Storage holds the object storage settings for uploaded images.
type Storage struct {
	Path          string // root directory of all buckets
	Bucket        string // bucket all uploads go to
	PublicURL     string // base url the bucket is reachable at, without the bucket name
	MaxUploadSize int64  // bytes
}

// Admin is the account created on first start when no user exists.
type Admin struct {
	Email    string
	Password string
}

// Defaults are used wherever the stored settings or a new record leave a field empty.
type Defaults struct {
	HeroImageURL        string
	Title               string
	Subtitle            string
	Badge               string
	PrimaryButtonText   string
	SecondaryButtonText string
	PrimaryButtonColor  string
	PostAuthor          string
	PostAvatarURL       string
}
