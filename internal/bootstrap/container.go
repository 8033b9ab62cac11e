package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"support-assistant-be/internal/config"
	"support-assistant-be/internal/constant"
	"support-assistant-be/internal/controller"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/service"
	"support-assistant-be/pkg/assistant/confidence"
	"support-assistant-be/pkg/assistant/guardrail"
	"support-assistant-be/pkg/assistant/ratelimit"
	"support-assistant-be/pkg/assistant/response"
	"support-assistant-be/pkg/assistant/session"
	"support-assistant-be/pkg/interaction"
	"support-assistant-be/pkg/knowledge"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	MonitorController controller.IMonitorController

	// Background Services (Exposed for main.go to run)
	InteractionConsumerService service.IInteractionConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Engine components
	sessions := session.NewStore(
		session.WithTTL(time.Duration(cfg.Chatbot.SessionTTLMinutes) * time.Minute),
	)

	window := time.Duration(cfg.Chatbot.WindowSeconds) * time.Second
	var limiter ratelimit.Limiter
	if cfg.Chatbot.RateLimitBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.Chatbot.MaxRequests, window, func(err error) {
			sysLogger.Warn(constant.LogModuleChatbot, "redis rate limiter error, allowing request", map[string]interface{}{
				"error": err.Error(),
			})
		})
		log.Printf("[INFO] Using Rate Limiter: REDIS")
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.Chatbot.MaxRequests, window)
		log.Printf("[INFO] Using Rate Limiter: MEMORY")
	}

	index := knowledge.NewIndex(knowledge.NewHashEmbedder())
	if cfg.Chatbot.KnowledgeIndex != "" {
		if n, err := index.LoadFile(cfg.Chatbot.KnowledgeIndex); err != nil {
			log.Printf("[WARN] Failed to load knowledge index %s: %v. Using seed documents", cfg.Chatbot.KnowledgeIndex, err)
			index.Ingest(knowledge.SeedDocuments())
		} else {
			log.Printf("[INFO] Loaded knowledge index: %d chunks", n)
		}
	} else {
		index.Ingest(knowledge.SeedDocuments())
	}

	stats := interaction.NewStatsAggregate()

	// 4. Services
	chatbotService := service.NewChatbotService(
		sessions,
		limiter,
		guardrail.NewEvaluator(),
		confidence.NewScorer(),
		response.NewComposer(),
		index,
		interaction.NewPublisher(pubSub),
		sysLogger,
		cfg.Chatbot.SearchTopK,
	)
	consumerService := service.NewInteractionConsumerService(pubSub, stats, sysLogger)

	// 5. Controllers
	return &Container{
		ChatbotController: controller.NewChatbotController(chatbotService),
		MonitorController: controller.NewMonitorController(stats, sysLogger),

		InteractionConsumerService: consumerService,

		Logger: sysLogger,
	}
}
