package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`
	API    API    `yaml:"api"`
	Feed   Feed   `yaml:"feed"`
	Upload Upload `yaml:"upload"`
}

type Server struct {
	Port          string `yaml:"port"`
	SecureCookies bool   `yaml:"secure_cookies"`
	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
}

type API struct {
	BaseURL    string `yaml:"base_url"`    // REST backend, e.g. http://localhost:8080/api
	StaticBase string `yaml:"static_base"` // origin for backend-relative asset paths
}

type Feed struct {
	PageSize int `yaml:"page_size"`
}

type Upload struct {
	MaxAttachments    int      `yaml:"max_attachments"`
	MaxAttachmentSize int64    `yaml:"max_attachment_size"` // bytes, per request
	AllowedImageMimes []string `yaml:"allowed_image_mimes"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg)
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return &cfg
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.StaticBase == "" {
		return fmt.Errorf("config: api.static_base is required")
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("config: feed.page_size must be positive")
	}
	if c.Server.Port == "" {
		c.Server.Port = "8081"
	}
	return nil
}
