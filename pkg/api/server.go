package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/transitline/transitline/pkg/api/routes"
	"github.com/transitline/transitline/pkg/http_server"
	"github.com/transitline/transitline/pkg/metrics"
)

func NewApp(accountAuth fiber.Handler) *fiber.App {
	webApp := fiber.New()
	webApp.Use(http_server.NewLogger())

	webApp.Get("/metrics", adaptor.HTTPHandler(metrics.Default.Handler()))

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.Stats)

	routes.PlannerRouter(group.Group("/planner"))

	routes.LinesRouter(group.Group("/lines"))
	routes.StopsRouter(group.Group("/stops"))
	routes.VehiclesRouter(group.Group("/vehicles"))

	routes.IncidentsRouter(group.Group("/incidents"))
	routes.ServiceAlertRouter(group.Group("/service_alerts"))

	routes.AccountRouter(group.Group("/account", accountAuth))

	return webApp
}

func SetupServer(listen string) error {
	webApp := NewApp(EnsureValidToken())

	return webApp.Listen(listen)
}
