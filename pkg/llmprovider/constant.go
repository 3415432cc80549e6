package llmprovider

// Provider names accepted in config.
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderQwen     = "qwen"
)

const logPrefix = "[LLMProvider]"
