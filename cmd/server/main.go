package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/config"
	"github.com/iliyamo/stayhub/internal/database"
	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/handler"
	"github.com/iliyamo/stayhub/internal/queue"
	"github.com/iliyamo/stayhub/internal/repository"
	"github.com/iliyamo/stayhub/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	f, err := buildFacade(cfg)
	if err != nil {
		log.Fatal(err)
	}

	rdb := config.NewRedisClient() // nil disables cache + rate limiting
	publish := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	if publish {
		go func() {
			if err := queue.StartReviewConsumer(); err != nil {
				log.Printf("review consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, f),
		Users:     handler.NewUserHandler(f),
		Places:    handler.NewPlaceHandler(f, publish),
		Reviews:   handler.NewReviewHandler(f, publish),
		Amenities: handler.NewAmenityHandler(f),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.StoreDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// buildFacade selects the store driver.  The in-memory driver is the
// default; MySQL serves the same Store contract when configured.
func buildFacade(cfg config.Config) (*facade.Facade, error) {
	if cfg.StoreDriver != "mysql" {
		return facade.NewInMemory(cfg.BcryptCost), nil
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, err
	}
	return facade.New(facade.Stores{
		Users:     repository.NewUserStore(db),
		Places:    repository.NewPlaceStore(db),
		Reviews:   repository.NewReviewStore(db),
		Amenities: repository.NewAmenityStore(db),
	}, cfg.BcryptCost), nil
}
