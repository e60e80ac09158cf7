package main

import (
	"time"

	"mestej/internal/cart"
	"mestej/internal/cache"
	"mestej/internal/config"
	"mestej/internal/domain/model"
	"mestej/internal/handler"
	"mestej/internal/infra/db"
	infraRepo "mestej/internal/infra/repository"
	"mestej/internal/server"
	"mestej/internal/usecase"
	auth "mestej/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークンは短命、更新はログインし直し
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはローカル開発用。無ければ環境変数だけで動く。
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductPrice{},
		&model.Order{},
		&model.OrderItem{},
		&model.AdminActivityLog{},
	); err != nil {
		panic(err)
	}

	//Redis（カート保存とカタログキャッシュ）
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	priceRepo := infraRepo.NewProductPriceGormRepository(gormDB)
	activityRepo := infraRepo.NewActivityLogGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//カート保存先とカタログキャッシュ
	cartStore := cart.NewRedisStore(redisClient)
	catalogCache := cache.NewRedisCache(redisClient)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	meUC := auth.NewMeUsecase(userRepo)

	productUC := usecase.NewProductUsecase(productRepo, priceRepo, catalogCache, clock)
	orderUC := usecase.NewOrderUsecase(txManager, idGen, clock)

	adminUserUC := usecase.NewAdminUserUsecase(txManager, activityRepo, idGen, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, activityRepo, idGen, clock)
	adminProductUC := usecase.NewAdminProductUsecase(txManager, productRepo, priceRepo, activityRepo, catalogCache, idGen, clock)
	dashboardUC := usecase.NewDashboardUsecase(statsRepo, activityRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:           handler.NewAuthHandler(registerUC, loginUC, meUC),
		Product:        handler.NewProductHandler(productUC),
		Cart:           handler.NewCartHandler(cartStore, productUC),
		Order:          handler.NewOrderHandler(orderUC, cartStore),
		AdminUser:      handler.NewAdminUserHandler(adminUserUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct:   handler.NewAdminProductHandler(adminProductUC),
		AdminDashboard: handler.NewAdminDashboardHandler(dashboardUC),
	}

	//Server起動
	addr := cfg.Port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, handlers, userRepo); err != nil {
		panic(err)
	}
}
