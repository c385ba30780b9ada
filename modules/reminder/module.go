package reminder

import (
	"eventrely-api/core/cache"
	"eventrely-api/core/clock"
	"eventrely-api/core/database"
	"eventrely-api/core/queue"
	"eventrely-api/modules/reminder/controller"
	"eventrely-api/modules/reminder/repository"
	"eventrely-api/modules/reminder/router"
	"eventrely-api/modules/reminder/service"
	"eventrely-api/modules/reminder/worker"

	"github.com/labstack/echo/v4"
)

// Options carries the optional collaborators of the module. Zero values fall
// back to a no-op cache, a log-only publisher and the system clock.
type Options struct {
	Cache     cache.Cache
	Publisher service.EventPublisher
	Clock     clock.Clock
	Query     service.QueryOptions
}

// Init initializes the reminder module and registers routes
func Init(e *echo.Echo, db database.IDatabase, opts Options) {
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}

	repo := repository.NewEventRepository(db, opts.Clock)
	commands := service.NewCommandService(repo, opts.Publisher, opts.Cache, opts.Query.CacheTTL, opts.Clock)
	queries := service.NewQueryService(repo, opts.Cache, opts.Query)
	ctrl := controller.NewEventController(commands, queries)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e)
}

// RegisterWorker attaches the domain event consumer to w.
func RegisterWorker(w *queue.Worker) {
	worker.NewDomainEventHandler().Register(w)
}
