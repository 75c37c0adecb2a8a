package web

import (
	"bracket-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	Wiki string
	API  *api.API
}

// Server is the HTTP server that handles webhook and read requests
type Server struct {
	api  *api.API
	wiki string
}
