package main

import (
	"github.com/campusgate/admission_service/config"
	"github.com/campusgate/admission_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
