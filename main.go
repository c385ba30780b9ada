package main

import (
	"os"

	"eventrely-api/core/logger"
	"eventrely-api/core/server"

	_ "eventrely-api/docs" // Swagger docs
)

// @title EventRELY API
// @version 1.0
// @description Event reminder API: create events, complete or cancel them, and query them by id, user, day or upcoming window.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Main:Run:Error", "error", err)
		os.Exit(1)
	}
}
