package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	controller "github.com/Pavel26ru/BruCup/internal/controllers/http"
	"github.com/Pavel26ru/BruCup/internal/domain"
	mmysql "github.com/Pavel26ru/BruCup/internal/infra/mysql"
	"github.com/Pavel26ru/BruCup/internal/infra/rabbitmq"
	"github.com/Pavel26ru/BruCup/internal/notify"
	"github.com/Pavel26ru/BruCup/internal/repository"
	"github.com/Pavel26ru/BruCup/internal/repository/memory"
	mysqlrepo "github.com/Pavel26ru/BruCup/internal/repository/mysql"
	"github.com/Pavel26ru/BruCup/internal/services"
	"github.com/Pavel26ru/BruCup/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	menuPath := envOr("MENU_PATH", "data/menu.json")
	optionsPath := envOr("OPTIONS_PATH", "data/options.json")
	catalog, err := memory.LoadCatalog(menuPath, optionsPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	var shops []domain.CoffeeShop
	if raw := os.Getenv("COFFEE_SHOPS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &shops); err != nil {
			log.Fatalf("COFFEE_SHOPS: %v", err)
		}
	}
	if len(shops) == 0 {
		log.Println("warning: no coffee shops configured, ordering flow has no locations")
	}

	var orderRepo repository.OrderRepository
	var userRepo repository.UserRepository
	if os.Getenv("MYSQL_HOST") != "" {
		db, err := mmysql.NewMySQLFromEnv()
		if err != nil {
			log.Fatalf("db: connect: %v", err)
		}
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)

		orderRepo = mysqlrepo.NewOrderRepository(db)
		userRepo = mysqlrepo.NewUserRepository(db)
	} else {
		log.Println("MYSQL_HOST not set, using in-memory repositories")
		orderRepo = memory.NewOrderRepository()
		userRepo = memory.NewUserRepository()
	}

	var sessions session.Store
	if host := os.Getenv("REDIS_HOST"); host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         host + ":" + envOr("REDIS_PORT", "6379"),
			DB:           0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		sessions = session.NewRedisStore(client)
	} else {
		log.Println("REDIS_HOST not set, using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), envOr("OUTBOUND_EXCHANGE", "brucup.outbound"))
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	pricing := services.NewPricingService(catalog)
	orders := services.NewOrderService(orderRepo, catalog, pricing)
	users := services.NewUserService(userRepo)
	dispatcher := notify.NewDispatcher(publisher)
	broadcast := services.NewBroadcastService(userRepo, publisher)
	conversation := services.NewConversationService(sessions, catalog, pricing, orders, users, dispatcher, broadcast, shops)

	handler := controller.NewHandler(conversation)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	port := envOr("PORT", "8080")
	log.Printf("Starting BruCup core on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
