package model

// ================ Config ================

// KnowledgeBaseConfig locates the MealRec+ dataset files.
type KnowledgeBaseConfig struct {
	DataPath string `envconfig:"MEALREC_DATA_PATH" default:"MealRec+/MealRec+H"`
}

type ConversationConfig struct {
	TTL   string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
	MaxTurns int `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type ResponsePromptConfig struct {
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"MealRec Assistant"`
	DatasetName   string `envconfig:"PROMPT_DATASET_NAME" default:"MealRec+"`
}
