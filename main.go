package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Mubarek26/MenuVerse/clients"
	"github.com/Mubarek26/MenuVerse/config"
	"github.com/Mubarek26/MenuVerse/geo"
	"github.com/Mubarek26/MenuVerse/handlers"
	"github.com/Mubarek26/MenuVerse/rabbitmq"
	"github.com/Mubarek26/MenuVerse/store"
	"github.com/Mubarek26/MenuVerse/validators"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	log.Printf("Starting Menu Order Service on port %s", cfg.Port)

	// Set Gin mode
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize RabbitMQ channel pool for the kitchen queue
	channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Fatalf("Failed to create RabbitMQ channel pool: %v", err)
	}
	defer channelPool.Close()

	publisher := rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue)

	// Upstream collaborators
	timeout := time.Duration(cfg.HTTPTimeoutSecs) * time.Second
	orderClient := clients.NewOrderClient(cfg.OrderAPIURL, timeout)
	paymentClient := clients.NewPaymentClient(cfg.PaymentAPIURL, timeout)
	menuClient := clients.NewMenuClient(cfg.MenuAPIURL, timeout)

	// State and handlers. The service has no device fix of its own;
	// positions arrive from the portal through the draft patch.
	cartStore := store.NewCartStore()
	cartHandler := handlers.NewCartHandler(cartStore, menuClient, geo.Unavailable{})
	checkoutHandler := handlers.NewCheckoutHandler(cartStore, orderClient, publisher, validators.ValidateDraft)
	paymentHandler := handlers.NewPaymentHandler(paymentClient)
	menuHandler := handlers.NewMenuHandler(menuClient)

	// Setup router
	router := gin.Default()

	// Routes
	router.POST("/carts", cartHandler.CreateCart)
	router.GET("/carts/:cartId", cartHandler.GetCart)
	router.DELETE("/carts/:cartId", cartHandler.DeleteCart)
	router.POST("/carts/:cartId/items", cartHandler.AddItem)
	router.PUT("/carts/:cartId/items/:itemId", cartHandler.UpdateItem)
	router.DELETE("/carts/:cartId/items/:itemId", cartHandler.RemoveItem)
	router.DELETE("/carts/:cartId/items", cartHandler.ClearCart)
	router.PUT("/carts/:cartId/draft", cartHandler.UpdateDraft)
	router.PUT("/carts/:cartId/draft/location", cartHandler.SelectLocation)
	router.POST("/carts/:cartId/checkout", checkoutHandler.Checkout)
	router.GET("/payment/verify", paymentHandler.VerifyPayment)
	router.GET("/menu", menuHandler.GetMenu)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
