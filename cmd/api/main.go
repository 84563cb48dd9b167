package main

import (
	"fmt"
	"log"
	"log/slog"

	"Lee_Groups/internal/config"
	"Lee_Groups/internal/handler"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/mysql"
	rrepo "Lee_Groups/internal/repository/redis"
	"Lee_Groups/internal/router"
	"Lee_Groups/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DBDSN == "" || cfg.SessionSecret == "" {
		log.Fatal("DATABASE_URI and SECRET_KEY are required")
	}

	db, err := mysql.InitDB(cfg.DBDSN)
	if err != nil {
		log.Fatal("failed connect db:", err)
	}

	// 自动建表（开发阶段 OK）
	if err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Member{},
		&model.Conversation{},
		&model.GroupEvent{},
	); err != nil {
		log.Fatal("failed migrate:", err)
	}

	// redis 可选，不配则会话只靠 JWT 校验
	var sessions *rrepo.SessionRepository
	if cfg.RedisAddr != "" {
		client, err := rrepo.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("failed connect redis:", err)
		}
		sessions = &rrepo.SessionRepository{Client: client}
	} else {
		slog.Warn("REDIS_ADDR not set, sessions validated by JWT only")
	}

	userRepo := &mysql.UserRepository{DB: db}
	groupRepo := &mysql.GroupRepository{DB: db}
	memberRepo := &mysql.MemberRepository{DB: db}
	convRepo := &mysql.ConversationRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}

	// kafka 可选，不配则事件留在 outbox 表里
	var relayer *service.EventRelayer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewEventProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			log.Fatal("failed init kafka:", err)
		}
		defer producer.Close()
		relayer = service.NewEventRelayer(outboxRepo, service.KafkaSender(producer))
	}

	// SMTP 可选，不配则不发欢迎邮件
	var emailSvc *service.EmailService
	if cfg.SMTP.Host != "" {
		emailSvc = service.NewEmailService(pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	secret := []byte(cfg.SessionSecret)
	userSvc := service.NewUserService(userRepo, sessions, secret, cfg.Administrators, emailSvc)
	groupSvc := service.NewGroupService(groupRepo, memberRepo, userRepo, relayer)
	convSvc := service.NewConversationService(convRepo, relayer)

	h := router.Handlers{
		Auth:         middleware.NewAuth(secret, sessions, userRepo),
		User:         handler.NewUserHandler(userSvc, groupSvc),
		Group:        handler.NewGroupHandler(groupSvc, convSvc, userSvc),
		Conversation: handler.NewConversationHandler(convSvc, groupSvc),
	}

	r := router.InitRouter(h)
	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("listening", "addr", addr)
	log.Fatal(r.Run(addr))
}
