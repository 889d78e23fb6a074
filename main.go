package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mealrec-agent-poc/server/internal/agent/graph"
	"github.com/mealrec-agent-poc/server/internal/agent/model"
	"github.com/mealrec-agent-poc/server/internal/agent/repo"
	"github.com/mealrec-agent-poc/server/internal/core"
	"github.com/mealrec-agent-poc/server/internal/kb"
	logx "github.com/mealrec-agent-poc/server/pkg/logger"
	pkgredis "github.com/mealrec-agent-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent example,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Runtime
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	KnowledgeBase model.KnowledgeBaseConfig
	Response      model.ResponseModelConfig
	Prompt        model.ResponsePromptConfig
	Conversation  model.ConversationConfig
}

func main() {
	fmt.Println("Starting meal recommendation agent demo...")
	ctx := context.Background()
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	// Load the recipe dataset and build the in-memory index
	ds := kb.LoadDataset(envCfg.KnowledgeBase.DataPath)
	idx := kb.BuildIndex(ds)
	fmt.Printf("Knowledge base ready: %d courses indexed\n", idx.Len())

	// ====================================================
	// Build graph config entirely from env
	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	cfg := graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ResponseModel:    envCfg.Response,
		ResponsePrompt:   envCfg.Prompt,
		Conversation:     envCfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Index:            idx,
	}

	runner, err := graph.BuildResponseGraph(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Healthy main course inquiry",
			query:       "I want a healthy main course",
		},
		{
			description: "Very healthy appetizer with a score cap",
			query:       "Give me a very healthy appetizer, FSA score under 4 if possible",
		},
		{
			description: "Complete meal plan",
			query:       "Plan a 3-course heart healthy meal for me",
		},
	}

	conversationID := uuid.NewString()

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: \"%s\"\n", test.query)
		fmt.Println("Processing...")

		response, err := runner.Invoke(ctx, model.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to invoke graph for test %d: %v", i+1, err)
		}

		fmt.Printf("Response %d: %s\n", i+1, response)
		fmt.Println("────────────────────────────────────────────────")

		// add slight delay between tests for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All demo queries completed successfully!")
}
