//go:build wireinject
// +build wireinject

package di

import (
	"cowork/config"
	"cowork/infras/jwt"
	"cowork/infras/kafka"
	"cowork/infras/locker"
	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/infras/redis"
	"cowork/infras/s3"
	"cowork/internal/notification"
	"cowork/permissions"
	"cowork/shared/cache"
	"cowork/transport/http"
	"cowork/transport/http/middleware"
	"cowork/transport/http/router"

	authService "cowork/internal/domains/auth/service"
	imageRepository "cowork/internal/domains/image/repository"
	imageService "cowork/internal/domains/image/service"
	officeRepository "cowork/internal/domains/office/repository"
	officeService "cowork/internal/domains/office/service"
	reservationRepository "cowork/internal/domains/reservation/repository"
	reservationService "cowork/internal/domains/reservation/service"
	tagRepository "cowork/internal/domains/tag/repository"
	tagService "cowork/internal/domains/tag/service"
	userRepository "cowork/internal/domains/user/repository"
	userService "cowork/internal/domains/user/service"
	authHandler "cowork/internal/handlers/auth"
	imageHandler "cowork/internal/handlers/image"
	officeHandler "cowork/internal/handlers/office"
	reservationHandler "cowork/internal/handlers/reservation"
	tagHandler "cowork/internal/handlers/tag"
	userHandler "cowork/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	jwt.New,
	locker.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notification.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var officeDomain = wire.NewSet(
	officeRepository.New,
	officeRepository.NewOfficeTag,
	officeService.New,
)

var imageDomain = wire.NewSet(
	imageRepository.New,
	imageService.New,
)

var tagDomain = wire.NewSet(
	tagRepository.New,
	tagService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	officeDomain,
	imageDomain,
	tagDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	officeHandler.New,
	imageHandler.New,
	tagHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
