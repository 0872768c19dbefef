package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/group"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/role"
	"github.com/gatekit/gatekit/internal/application/user"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/config"
	infraauth "github.com/gatekit/gatekit/internal/infrastructure/auth"
	httprouter "github.com/gatekit/gatekit/internal/infrastructure/http"
	"github.com/gatekit/gatekit/internal/infrastructure/http/handlers"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
	"github.com/gatekit/gatekit/internal/infrastructure/identity"
	"github.com/gatekit/gatekit/internal/infrastructure/persistence/migrate"
	"github.com/gatekit/gatekit/internal/infrastructure/persistence/postgres"
	"github.com/gatekit/gatekit/internal/infrastructure/queue"
	"github.com/gatekit/gatekit/internal/infrastructure/security"
	"github.com/gatekit/gatekit/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := migrate.Up(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	userReads := postgres.NewUserReadRepository(pool)
	groupReads := postgres.NewGroupReadRepository(pool)
	roleReads := postgres.NewRoleRepository(pool)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		opts := []webhook.HTTPEmitterOption{}
		if cfg.Webhook.APIKey != "" {
			opts = append(opts, webhook.WithHeader("Authorization", "Bearer "+cfg.Webhook.APIKey))
		}
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var eventEnqueuer ports.EventEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		eventEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else if cfg.Webhook.URL != "" {
		eventEnqueuer = webhook.NewSyncEnqueuer(emitter)
	} else {
		eventEnqueuer = queue.NewNoopEnqueuer()
	}

	dispatcher := event.NewDispatcher(log)
	dispatcher.RegisterHandler(event.NewLogHandler(log))
	dispatcher.RegisterHandler(postgres.NewEventStore(pool))
	dispatcher.RegisterHandler(webhook.NewEventHandler(eventEnqueuer))

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	var provider ports.IdentityProvider
	if cfg.Identity.Mode == "http" {
		provider = identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey)
	} else {
		provider = identity.NewLocalProvider(hasher)
	}

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	tokens := infraauth.NewTokenService(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	namespace := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(cfg.UUIDNamespace))
	az := authz.NewService()
	userCheck := validate.NewUserValidator(userRepo)
	groupCheck := validate.NewUserGroupValidator(groupRepo)

	registerUC := user.NewRegisterUser(userRepo, provider, dispatcher, namespace)
	signInUC := user.NewSignIn(userRepo, userReads, provider, tokens, cfg.JWT.AccessExpiry)
	getUserUC := user.NewGetUser(az, userReads)
	findUsersUC := user.NewFindUsers(az, userReads)
	updateUserUC := user.NewUpdateUser(az, userCheck, userRepo, dispatcher)
	toggleStatusUC := user.NewToggleUserStatus(az, userCheck, userRepo, provider, dispatcher, log)
	deleteUserUC := user.NewDeleteUser(az, userCheck, userRepo, dispatcher)

	createGroupUC := group.NewCreateUserGroup(az, groupRepo, dispatcher)
	updateGroupUC := group.NewUpdateUserGroup(az, groupCheck, groupRepo, dispatcher)
	deleteGroupUC := group.NewDeleteUserGroup(az, groupCheck, groupRepo, dispatcher)
	getGroupUC := group.NewGetUserGroup(az, groupReads)
	findGroupsUC := group.NewFindUserGroups(az, groupReads)
	addRoleUC := group.NewAddRoleToUserGroup(az, groupCheck, roleReads, groupRepo, dispatcher)
	removeRoleUC := group.NewRemoveRoleFromUserGroup(az, groupCheck, groupRepo, dispatcher)
	addUserUC := group.NewAddUserToUserGroup(az, groupCheck, userCheck, groupRepo, dispatcher)
	removeUserUC := group.NewRemoveUserFromUserGroup(az, groupCheck, groupRepo, dispatcher)

	findRolesUC := role.NewFindRoles(az, roleReads)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment))

	authHandler := handlers.NewAuthHandler(registerUC, signInUC, log)
	usersHandler := handlers.NewUsersHandler(getUserUC, findUsersUC, updateUserUC, toggleStatusUC, deleteUserUC, log)
	groupsHandler := handlers.NewGroupsHandler(createGroupUC, updateGroupUC, deleteGroupUC, getGroupUC, findGroupsUC, addRoleUC, removeRoleUC, addUserUC, removeUserUC, log)
	rolesHandler := handlers.NewRolesHandler(findRolesUC, log)
	requireJWT := middleware.NewAuthValidator(tokens).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		HealthHandler: healthHandler,
		UsersHandler:  usersHandler,
		GroupsHandler: groupsHandler,
		RolesHandler:  rolesHandler,
		RequireJWT:    requireJWT,
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:   ipLimit,
		Metrics:       cfg.Metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
