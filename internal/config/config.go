package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"4096"`
		Temperature float32       `yaml:"temperature" default:"0.7"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
		RateLimit   int           `yaml:"rate_limit" default:"30"` // requests per minute
	} `yaml:"llm"`

	Generator struct {
		DefaultQuestions int           `yaml:"default_questions" default:"10"`
		MinQuestions     int           `yaml:"min_questions" default:"1"`
		MaxQuestions     int           `yaml:"max_questions" default:"50"`
		TechnicalShare   float64       `yaml:"technical_share" default:"0.7"` // default mix when no explicit counts given
		MaxQuestionLen   int           `yaml:"max_question_len" default:"500"`
		Timeout          time.Duration `yaml:"timeout" default:"45s"`
		BankFile         string        `yaml:"bank_file"` // optional YAML override for the built-in bank
	} `yaml:"generator"`

	Resume struct {
		MaxUploadBytes int64 `yaml:"max_upload_bytes" default:"5242880"`
		MaxTextLen     int   `yaml:"max_text_len" default:"2000"`
		AISkills       bool  `yaml:"ai_skills" default:"true"` // LLM-assisted skill extraction
	} `yaml:"resume"`

	VectorStore struct {
		Enabled     bool          `yaml:"enabled" default:"false"`
		DatabaseURL string        `yaml:"database_url"`
		Dimension   int           `yaml:"dimension" default:"3072"`
		TopK        int           `yaml:"top_k" default:"5"`
		Timeout     time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"vector_store"`

	Embeddings struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model" default:"gemini-embedding-001"`
	} `yaml:"embeddings"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Sessions struct {
		Enabled     bool          `yaml:"enabled" default:"true"`
		TTL         time.Duration `yaml:"ttl" default:"24h"`
		RecentLimit int           `yaml:"recent_limit" default:"20"`
	} `yaml:"sessions"`

	BackgroundTasks struct {
		MaxWorkers  int           `yaml:"max_workers" default:"4"`
		QueueSize   int           `yaml:"queue_size" default:"64"`
		TaskTimeout time.Duration `yaml:"task_timeout" default:"30s"`
	} `yaml:"background_tasks"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.LLM.Provider = "claude"
	config.LLM.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 4096
	config.LLM.Temperature = 0.7
	config.LLM.Timeout = 30 * time.Second
	config.LLM.RateLimit = 30

	config.Generator.DefaultQuestions = 10
	config.Generator.MinQuestions = 1
	config.Generator.MaxQuestions = 50
	config.Generator.TechnicalShare = 0.7
	config.Generator.MaxQuestionLen = 500
	config.Generator.Timeout = 45 * time.Second

	config.Resume.MaxUploadBytes = 5 * 1024 * 1024
	config.Resume.MaxTextLen = 2000
	config.Resume.AISkills = true

	config.VectorStore.Dimension = 3072
	config.VectorStore.TopK = 5
	config.VectorStore.Timeout = 5 * time.Second

	config.Embeddings.Model = "gemini-embedding-001"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Sessions.Enabled = true
	config.Sessions.TTL = 24 * time.Hour
	config.Sessions.RecentLimit = 20

	config.BackgroundTasks.MaxWorkers = 4
	config.BackgroundTasks.QueueSize = 64
	config.BackgroundTasks.TaskTimeout = 30 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	// Also support ANTHROPIC_API_KEY for compatibility
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if rateLimit := os.Getenv("LLM_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.LLM.RateLimit = n
		}
	}

	if bankFile := os.Getenv("QUESTION_BANK_FILE"); bankFile != "" {
		c.Generator.BankFile = bankFile
	}

	if dbURL := os.Getenv("VECTOR_DATABASE_URL"); dbURL != "" {
		c.VectorStore.DatabaseURL = dbURL
		c.VectorStore.Enabled = true
	}

	if enabled := os.Getenv("VECTOR_STORE_ENABLED"); enabled != "" {
		c.VectorStore.Enabled = enabled == "true" || enabled == "1"
	}

	if topK := os.Getenv("VECTOR_STORE_TOP_K"); topK != "" {
		if k, err := strconv.Atoi(topK); err == nil {
			c.VectorStore.TopK = k
		}
	}

	if apiKey := os.Getenv("EMBEDDINGS_API_KEY"); apiKey != "" {
		c.Embeddings.APIKey = apiKey
	}

	// Also support GEMINI_API_KEY for compatibility
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" && c.Embeddings.APIKey == "" {
		c.Embeddings.APIKey = apiKey
	}

	if model := os.Getenv("EMBEDDINGS_MODEL"); model != "" {
		c.Embeddings.Model = model
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if sessionsEnabled := os.Getenv("SESSIONS_ENABLED"); sessionsEnabled != "" {
		c.Sessions.Enabled = sessionsEnabled == "true" || sessionsEnabled == "1"
	}

	if ttl := os.Getenv("SESSIONS_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Sessions.TTL = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
