package main

import (
	"log"
	"net/http"
	"time"

	"foodhub/config"
	"foodhub/gateway/internal/gateway"

	"github.com/rs/cors"
)

func newHandler(cfg gateway.Config) http.Handler {
	gw := gateway.NewGateway(cfg, &http.Client{Timeout: 30 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(gw.SetupRoutes())
}

func main() {
	config.Load()
	port := config.GetEnv("GATEWAY_PORT", "8080")

	handler := newHandler(gateway.Config{
		StorefrontSvcURL: config.GetEnv("STOREFRONT_SVC_URL", "http://localhost:8081"),
		FrontendDir:      config.GetEnv("FRONTEND_DIR", "./frontend"),
	})

	log.Printf("API Gateway starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
