package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Access struct {
		// Policy: request_approval или gift_card_payment.
		// Два варианта допуска не сливаются — деплой выбирает один.
		Policy        string `yaml:"policy"`
		AdminHandle   string `yaml:"admin_handle"`
		DefaultAmount int    `yaml:"default_amount"`
	} `yaml:"access"`

	Registry struct {
		Type string `yaml:"type"` // memory, sqlite
		Path string `yaml:"path"` // для sqlite
		Name string `yaml:"name"` // имя списка активных хэндлов
	} `yaml:"registry"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`       // local, s3
		BasePath   string `yaml:"base_path"`  // для local
		BaseURL    string `yaml:"base_url"`   // публичный префикс URL
		Bucket     string `yaml:"bucket"`     // для s3
		Region     string `yaml:"region"`     // для s3
		AccessKey  string `yaml:"access_key"` // для s3
		SecretKey  string `yaml:"secret_key"` // для s3
		Endpoint   string `yaml:"endpoint"`   // кастомный s3-совместимый endpoint
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"`           // байты
		AllowedExtensions []string `yaml:"allowed_extensions"` // без точки
		PreviewMaxWidth   int      `yaml:"preview_max_width"`  // px, превью-замок
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig загружает конфиг из config.yaml или из переменных окружения (режим теста).
func LoadConfig() {
	var cfg Config

	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if serverEnv == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Режим теста: всё из окружения, без файла
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60

	cfg.Access.Policy = os.Getenv("ACCESS_POLICY")
	cfg.Access.AdminHandle = os.Getenv("ADMIN_HANDLE")

	cfg.Registry.Type = "memory"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// GetConfig возвращает текущий конфиг (LoadConfig должен быть вызван раньше).
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Access.Policy == "" {
		cfg.Access.Policy = "request_approval"
	}
	if cfg.Access.AdminHandle == "" {
		cfg.Access.AdminHandle = "desireddit4us"
	}
	if cfg.Access.DefaultAmount == 0 {
		cfg.Access.DefaultAmount = 500
	}
	if cfg.Registry.Type == "" {
		cfg.Registry.Type = "memory"
	}
	if cfg.Registry.Name == "" {
		// Фиксированное имя списка активных хэндлов
		cfg.Registry.Name = "activeUsers"
	}
	if cfg.Registry.Path == "" {
		cfg.Registry.Path = "./data/registry.db"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "mp4", "mp3", "pdf"}
	}
	if cfg.Upload.PreviewMaxWidth == 0 {
		cfg.Upload.PreviewMaxWidth = 320
	}
}
