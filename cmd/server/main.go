// Command server runs the scheduling HTTP API, grounded on the
// teacher repository's cmd/server/main.go (gin.Default, a CORS
// middleware, r.Run) but serving the CSP endpoints from internal/httpapi
// instead of a CSV-upload pipeline.
package main

import (
	"os"

	"github.com/rhyrak/coursecsp/internal/config"
	"github.com/rhyrak/coursecsp/internal/httpapi"
)

func main() {
	cfg := config.Default()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	r := httpapi.NewRouter(cfg)
	r.Run(addr)
}
