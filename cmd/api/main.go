package main

import (
	"context"
	"log"

	"github.com/goyibnazarovasliddin/letters-registery/config"
	"github.com/goyibnazarovasliddin/letters-registery/routes"
	"github.com/goyibnazarovasliddin/letters-registery/utils/audit"
	"github.com/goyibnazarovasliddin/letters-registery/utils/storage"

	"github.com/gofiber/fiber/v2"
)

func main() {
	if err := config.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db := config.ConnectDB()
	storage.InitS3Client()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go audit.StartConsumer(ctx)

	app := fiber.New()

	routes.Register(app, db)

	log.Println("🚀 API running on :8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatal(err)
	}
}
