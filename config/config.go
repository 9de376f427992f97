package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/vegmart/vegmart/pkg/common"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	JwtSecret string `yaml:"jwt_secret"`
}

type DBConfig struct {
	Type    string `yaml:"type"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Name    string `yaml:"name"`
	User    string `yaml:"user"`
	Passwd  string `yaml:"passwd"`
	MaxConn int    `yaml:"max_conn"`
	IdleConn int   `yaml:"idle_conn"`
	Debug   bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type MailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SmtpHost string `yaml:"smtp_host"`
	SmtpPort int    `yaml:"smtp_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Mail     MailConfig `yaml:"mail"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "vegmart",
		Location: "Asia/Kolkata",
		Workdir:  "/var/vegmart",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-vegmart-0cc3-11fe38f32aed",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "vegmart",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/vegmart/vegmart.log",
	},
	Mail: MailConfig{
		Enabled:  false,
		SmtpPort: 587,
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the YAML configuration from cfile, falling back to
// /etc/vegmart.yml and finally to built-in defaults. Environment variables
// prefixed VEGMART_ override file values.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "vegmart.yml"
	}
	if !common.FileExists(cfile) {
		cfile = "/etc/vegmart.yml"
	}

	cfg := DefaultAppConfig
	if common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(errors.Wrap(err, "parse config file"))
			}
		}
	}

	setEnvValue("VEGMART_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("VEGMART_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("VEGMART_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("VEGMART_WEB_PORT", &cfg.Web.Port)
	setEnvValue("VEGMART_WEB_JWT_SECRET", &cfg.Web.JwtSecret)

	setEnvValue("VEGMART_DB_TYPE", &cfg.Database.Type)
	setEnvValue("VEGMART_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("VEGMART_DB_PORT", &cfg.Database.Port)
	setEnvValue("VEGMART_DB_NAME", &cfg.Database.Name)
	setEnvValue("VEGMART_DB_USER", &cfg.Database.User)
	setEnvValue("VEGMART_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("VEGMART_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("VEGMART_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("VEGMART_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("VEGMART_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvBoolValue("VEGMART_MAIL_ENABLED", &cfg.Mail.Enabled)
	setEnvValue("VEGMART_MAIL_SMTP_HOST", &cfg.Mail.SmtpHost)
	setEnvIntValue("VEGMART_MAIL_SMTP_PORT", &cfg.Mail.SmtpPort)
	setEnvValue("VEGMART_MAIL_USERNAME", &cfg.Mail.Username)
	setEnvValue("VEGMART_MAIL_PASSWORD", &cfg.Mail.Password)
	setEnvValue("VEGMART_MAIL_FROM", &cfg.Mail.From)

	return cfg
}

// InitDirs creates the working directory layout.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
}
