package envvar

const (
	// EchoverseEnv is the environment variable used to determine the environment
	EchoverseEnv = "ECHOVERSE_ENV"

	// EchoverseServerHTTPPort is the environment variable used to determine the HTTP port
	EchoverseServerHTTPPort = "ECHOVERSE_SERVER_HTTP_PORT"

	// EchoverseAudioDir is the environment variable used to override the audio output directory
	EchoverseAudioDir = "ECHOVERSE_AUDIO_DIR"

	// OpenAIAPIKey is the environment variable holding the OpenAI-compatible API key
	OpenAIAPIKey = "OPENAI_API_KEY"

	// HFToken is the environment variable holding the Hugging Face API token
	HFToken = "HF_TOKEN"
)
