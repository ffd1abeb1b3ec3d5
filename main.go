package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net"
	"os"
	"time"

	udpcrypto "github.com/beka-birhanu/udp-socket-manager/crypto"
	udppb "github.com/beka-birhanu/udp-socket-manager/encoding"
	udpsocket "github.com/beka-birhanu/udp-socket-manager/socket"
	"github.com/beka-birhanu/vinom-solver/api"
	api_i "github.com/beka-birhanu/vinom-solver/api/i"
	"github.com/beka-birhanu/vinom-solver/api/identity"
	solveapi "github.com/beka-birhanu/vinom-solver/api/solve"
	"github.com/beka-birhanu/vinom-solver/config"
	logger "github.com/beka-birhanu/vinom-solver/infrastruture/log"
	"github.com/beka-birhanu/vinom-solver/infrastruture/queue"
	"github.com/beka-birhanu/vinom-solver/infrastruture/repo"
	"github.com/beka-birhanu/vinom-solver/infrastruture/token"
	"github.com/beka-birhanu/vinom-solver/playback"
	"github.com/beka-birhanu/vinom-solver/service"
	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	userRepo        i.UserRepo
	runRepo         i.RunRepo
	sortedQueue     i.SortedQueue
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	playbackManager *playback.Manager
	socketManager   *udpsocket.ServerSocketManager
	runner          i.Runner
	dispatcher      i.Dispatcher
	runController   api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos() {
	userRepo = repo.NewUserRepo(mongoClient, config.Envs.DBName, "users")
	runRepo = repo.NewRunRepo(mongoClient, config.Envs.DBName, "runs")
	appLogger.Info("Repositories initialized")
}

func initQueue() {
	var err error
	sortedQueue, err = queue.NewRedisSortedQueue(redisClient)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run queue initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initPlayback() {
	playbackLogger, err := logger.New("PLAYBACK", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating playback logger: %v", err))
		os.Exit(1)
	}

	playbackManager, err = playback.NewManager(&playback.Config{Logger: playbackLogger})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating playback manager: %v", err))
		os.Exit(1)
	}

	asymm, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Generating playback RSA key: %v", err))
		os.Exit(1)
	}

	serverAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", config.Envs.HostIP, config.Envs.PlaybackPort))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Resolving playback socket addr: %v", err))
		os.Exit(1)
	}

	socketLogger, err := logger.New("SERVER-SOCKET", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating socket logger: %v", err))
		os.Exit(1)
	}

	socketManager, err = udpsocket.NewServerSocketManager(udpsocket.ServerConfig{
		ListenAddr:    serverAddr,
		Authenticator: playbackManager,
		AsymmCrypto:   udpcrypto.NewRSA(asymm),
		SymmCrypto:    udpcrypto.NewAESCBC(),
		Encoder:       &udppb.Protobuf{},
		HMAC:          &udpcrypto.HMAC{},
		Logger:        socketLogger,
	},
		udpsocket.ServerWithClientRegisterHandler(playbackManager.HandleClientRegister),
		udpsocket.ServerWithClientRequestHandler(playbackManager.HandleClientRequest),
		udpsocket.ServerWithReadBufferSize(2048),
		udpsocket.ServerWithHeartbeatExpiration(time.Second),
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating playback socket: %v", err))
		os.Exit(1)
	}

	playbackManager.SetSocket(socketManager)
	go socketManager.Serve()
	appLogger.Info("Playback socket serving")
}

func initRunner() {
	runnerLogger, err := logger.New("RUNNER", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating runner logger: %v", err))
		os.Exit(1)
	}

	runner, err = service.NewRunner(&service.RunnerConfig{
		Repo:        runRepo,
		Broadcaster: playbackManager,
		Logger:      runnerLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating runner: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Runner initialized")
}

func initDispatcher() {
	dispatchLogger, err := logger.New("DISPATCH", config.ColorYellow, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating dispatcher logger: %v", err))
		os.Exit(1)
	}

	dispatcher, err = service.NewDispatcher(sortedQueue, runner, dispatchLogger, &service.DispatchOptions{
		MaxConcurrent: config.Envs.MaxRuns,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating dispatcher: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Dispatcher initialized")
}

func initRunController() {
	var err error
	runController, err = solveapi.NewRunController(runner, dispatcher, playbackManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, runController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos()
	initQueue()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initPlayback()
	defer socketManager.Stop()

	initRunner()
	initDispatcher()
	initRunController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
