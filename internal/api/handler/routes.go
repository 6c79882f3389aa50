package handler

import (
	"net/http"

	"github.com/vfg2006/order-template-api/internal/api/handler/router"
	"github.com/vfg2006/order-template-api/internal/usecases/templating"
)

func Healthcheck(probe StoreStatusProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(probe),
		},
	}
}

func OrderTemplate(service templating.TemplateService) []router.Route {
	return []router.Route{
		{
			Path:    "/export-orders-template",
			Method:  http.MethodGet,
			Handler: ExportOrdersTemplate(service),
		},
	}
}
