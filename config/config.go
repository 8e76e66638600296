// server/config/config.go
package config

import (
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// GitHubConfig là thông số remote store: một file JSON trong repo.
type GitHubConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
	Token string `mapstructure:"token"`
	Path  string `mapstructure:"path"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"apiKey"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	GitHub GitHubConfig `mapstructure:"github"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Log    LogConfig    `mapstructure:"log"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
// File không tồn tại không phải là lỗi: app vẫn chạy được ở local mode
// và người dùng điền settings qua API sau.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("github.owner", "GITHUB_OWNER")
	viper.BindEnv("github.repo", "GITHUB_REPO")
	viper.BindEnv("github.token", "GITHUB_TOKEN")
	viper.BindEnv("github.path", "GITHUB_PATH")
	viper.BindEnv("gemini.apiKey", "GEMINI_API_KEY")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.format", "LOG_FORMAT")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("github.path", "database.json")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// Runtime bọc Config để settings có thể đổi lúc chạy (tương đương màn
// hình Pengaturan của bản PWA, nhưng lưu qua viper thay vì localStorage).
type Runtime struct {
	mu  sync.RWMutex
	cfg Config
}

func NewRuntime(cfg Config) *Runtime {
	return &Runtime{cfg: cfg}
}

// Get trả về bản sao config hiện tại.
func (r *Runtime) Get() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// UpdateSettings ghi bốn thông số settings mới và persist ra file config
// (best effort — không ghi được file thì settings vẫn sống trong memory).
func (r *Runtime) UpdateSettings(owner, repo, token, geminiKey string) error {
	r.mu.Lock()
	r.cfg.GitHub.Owner = owner
	r.cfg.GitHub.Repo = repo
	r.cfg.GitHub.Token = token
	r.cfg.Gemini.APIKey = geminiKey
	r.mu.Unlock()

	viper.Set("github.owner", owner)
	viper.Set("github.repo", repo)
	viper.Set("github.token", token)
	viper.Set("gemini.apiKey", geminiKey)

	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		return err
	}
	return nil
}
