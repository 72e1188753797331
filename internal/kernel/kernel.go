// Package kernel is the composition root. Boot connects the backing services
// once and wires repositories, services, controllers and the admin gate;
// App turns the result into an HTTP application.
package kernel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shashiranjanraj/shopfront/app/controllers"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/routes"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/app"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/cache"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/router"
	"github.com/shashiranjanraj/shopfront/pkg/storage"
	"github.com/shashiranjanraj/shopfront/pkg/workerpool"
)

// Kernel holds the process-wide handles.
type Kernel struct {
	Store    *database.Store
	Cache    *cache.Cache
	Disks    *storage.Manager
	Bus      *event.Bus
	Pool     *workerpool.Pool
	Signer   *auth.Signer
	Auth     *services.AuthService
	Gate     *rbac.Gate
	Handlers *routes.Controllers

	logSink *logger.MongoHandler
}

// Boot connects MongoDB, Redis and the storage disks and wires the
// application. Redis is optional; the others are not.
func Boot(ctx context.Context) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	store, err := database.Connect(ctx, config.Snapshot())
	if err != nil {
		return nil, err
	}

	k := &Kernel{Store: store, Bus: event.NewBus(), Signer: auth.NewSigner(config.JWTSecret())}

	if config.Bool("LOG_TO_MONGO", false) {
		k.logSink = logger.NewMongoHandler(store.Collection(database.Logs), slog.LevelInfo)
		logger.Attach(k.logSink)
	}

	k.Cache, err = cache.Connect(ctx)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err.Error())
	}

	k.Disks, err = storage.NewManager(ctx)
	if err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}

	k.Pool = workerpool.New(config.RatingWorkers(), workerpool.WithErrorHandler(func(name string, err error) {
		logger.Error("background task failed", "task", name, "error", err.Error())
	}))

	k.wire()
	return k, nil
}

// NewWith wires a Kernel around handles the caller already owns. Tests use
// it with mtest and miniredis.
func NewWith(store *database.Store, c *cache.Cache, disks *storage.Manager, pool *workerpool.Pool, signer *auth.Signer) *Kernel {
	k := &Kernel{Store: store, Cache: c, Disks: disks, Bus: event.NewBus(), Pool: pool, Signer: signer}
	k.wire()
	return k
}

func (k *Kernel) wire() {
	users := repositories.NewUserRepository(k.Store)
	products := repositories.NewProductRepository(k.Store)
	reviews := repositories.NewReviewRepository(k.Store)
	orders := repositories.NewOrderRepository(k.Store)
	carts := repositories.NewCartRepository(k.Store)
	disk := k.Disks.Default()

	ratings := services.NewRatingService(reviews, products, k.Cache)
	ratings.Listen(k.Bus, k.Pool)

	catalogue := services.NewProductService(products, reviews, disk, k.Cache, k.Bus)
	catalogue.Listen(k.Bus)

	k.Auth = services.NewAuthService(users, k.Signer)
	orderSvc := services.NewOrderService(orders, products, carts)

	k.Handlers = &routes.Controllers{
		Auth:         controllers.NewAuthController(k.Auth),
		Products:     controllers.NewProductController(catalogue),
		Reviews:      controllers.NewReviewController(services.NewReviewService(reviews, products, k.Bus)),
		Banners:      controllers.NewBannerController(services.NewBannerService(repositories.NewBannerRepository(k.Store), disk)),
		Testimonials: controllers.NewTestimonialController(services.NewTestimonialService(repositories.NewTestimonialRepository(k.Store), disk)),
		Newsletter:   controllers.NewNewsletterController(services.NewNewsletterService(repositories.NewSubscriberRepository(k.Store))),
		Contact:      controllers.NewContactController(services.NewContactService(repositories.NewContactRepository(k.Store))),
		Shop:         controllers.NewShopController(services.NewCartService(carts), orderSvc),
		Admin: controllers.NewAdminController(
			orderSvc,
			services.NewUserService(users),
			services.NewAnalyticsService(products, users, orders, reviews),
		),
	}
	k.Gate = rbac.NewGate(k.Signer, users)
}

// App is the HTTP application: middleware, probes, the local file server
// and every API and page route.
func (k *Kernel) App() *app.Application {
	a := app.New().
		Authenticate(middleware.Authenticate(k.Signer)).
		Check("mongo", k.Store.Ping).
		Check("redis", k.Cache.Ping).
		Routes(Routes(k.Handlers, k.Gate))

	if local := k.Disks.Local(); local != nil {
		a.Routes(func(r *router.Router) {
			r.Mount("/storage", "storage", http.StripPrefix("/storage", local.Handler()))
		})
	}
	return a
}

// Routes registers the API and the admin pages.
func Routes(h *routes.Controllers, gate *rbac.Gate) func(*router.Router) {
	return func(r *router.Router) {
		routes.RegisterAPI(r, h, gate)
		routes.RegisterWeb(r, gate)
	}
}

// RouteTable lists every route without connecting to anything.
func RouteTable() []router.RouteInfo {
	return app.New().Routes(Routes(&routes.Controllers{}, nil)).Router().Routes()
}

// Close drains background work, then releases the connections.
func (k *Kernel) Close(ctx context.Context) error {
	var errs []error
	if k.Pool != nil {
		errs = append(errs, k.Pool.Shutdown(ctx))
	}
	if k.Cache != nil {
		errs = append(errs, k.Cache.Close())
	}
	if k.logSink != nil {
		k.logSink.Close()
	}
	if k.Store != nil {
		errs = append(errs, k.Store.Close(ctx))
	}
	return errors.Join(errs...)
}
