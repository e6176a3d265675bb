package config

import (
	"github.com/product-reviews/product-reviews/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Widget    Widget
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // seconds to answer 503 on check alive before stopping
	URL            string // public base url of the service, used by the widget script
	CheckAliveURI  string // load balancer health check path
	BodyLimit      int    // max request body size in bytes
}

// Widget holds storefront widget settings.
type Widget struct {
	// DefaultConfig is the JSON document returned to the admin editor
	// for shops that never saved their own widget settings.
	DefaultConfig string
}
