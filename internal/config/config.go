package config

import (
	"os"
	"strconv"
	"strings"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Config struct {
	Port           int
	DBDSN          string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionSecret  string
	Administrators []string // 管理员邮箱白名单，环境变量里用 * 分隔
	SMTP           SMTP
	Kafka          Kafka
}

func Load() Config {
	port := 8080
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			redisDB = d
		}
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			smtpPort = p
		}
	}

	var admins []string
	if v := os.Getenv("ADMINISTRATORS"); v != "" {
		for _, a := range strings.Split(v, "*") {
			if a = strings.TrimSpace(a); a != "" {
				admins = append(admins, a)
			}
		}
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}

	return Config{
		Port:           port,
		DBDSN:          os.Getenv("DATABASE_URI"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		SessionSecret:  os.Getenv("SECRET_KEY"),
		Administrators: admins,
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Kafka: Kafka{
			Brokers: brokers,
			Topic:   os.Getenv("KAFKA_TOPIC"),
		},
	}
}
