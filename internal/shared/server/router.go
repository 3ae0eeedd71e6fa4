package server

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "interview-backend/internal/auth"
	"interview-backend/internal/interviews"
	"interview-backend/internal/llm"
	"interview-backend/internal/llm/openrouter"
	"interview-backend/internal/notes"
	"interview-backend/internal/questions"
	"interview-backend/internal/shared/config"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
	"interview-backend/internal/shared/storage/db"
	"interview-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(aiRateLimit()),
	)

	sqlDB := connectDatabase(cfg)

	var questionRepo questions.Repo
	var interviewRepo interviews.Repo
	var noteRepo notes.Repo
	var userRepo users.Repo
	if sqlDB != nil {
		questionRepo = &questions.PGRepo{DB: sqlDB}
		interviewRepo = &interviews.PGRepo{DB: sqlDB}
		noteRepo = &notes.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		questionRepo = questions.NewMemoryRepo()
		interviewRepo = interviews.NewMemoryRepo()
		noteRepo = notes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	if cfg.SeedQuestions {
		seeded, err := questions.Seed(context.Background(), questionRepo)
		if err != nil {
			log.Printf("failed to seed question catalog: %v", err)
		} else if seeded > 0 {
			log.Printf("seeded %d questions", seeded)
		}
	}

	followUps, evaluator := buildLLM(cfg)

	questionSvc := &questions.Service{Repo: questionRepo}
	interviewSvc := &interviews.Service{
		Repo:    interviewRepo,
		Catalog: questionRepo,
		Selector: &interviews.Selector{
			Pool: questionRepo,
			Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		},
		FollowUps: followUps,
		Evaluator: evaluator,
	}
	noteSvc := notes.NewService(noteRepo, questionRepo)
	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	googleAuthSvc.RegisterRoutes(api)
	users.NewHandler(userSvc).RegisterRoutes(api)
	questions.NewHandler(questionSvc).RegisterRoutes(api)
	interviews.NewHandler(interviewSvc).RegisterRoutes(api)
	notes.NewHandler(noteSvc).RegisterRoutes(api)

	return r
}

func connectDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(context.Background(), dbConn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return dbConn
}

// buildLLM wires the configured provider, or placeholders when no
// credentials are present so the rest of the API stays usable in dev.
func buildLLM(cfg config.Config) (llm.FollowUpGenerator, llm.InterviewEvaluator) {
	if cfg.LLMProvider == "openrouter" && cfg.OpenRouterAPIKey != "" {
		client, err := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("openrouter unavailable, using placeholders: %v", err)
		} else {
			return client, client
		}
	}
	return llm.PlaceholderFollowUpGenerator{}, llm.PlaceholderInterviewEvaluator{}
}

// aiRateLimit throttles the endpoints that call out to the LLM.
func aiRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AI": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api/v1/interview/answers") ||
				strings.HasPrefix(path, "/api/v1/interview/follow-up-answers") ||
				strings.HasSuffix(path, "/complete") {
				return "AI"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
