package job

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var (
	security   = []map[string][]string{{"bearer": {}}}
	jobErrors  = []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError, http.StatusBadGateway}
	fetchedTag = []string{"sync"}
)

func (h *Handler) routesOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-routes",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/routes",
		Summary:     "Синхронизация маршрутов активностей",
		Description: "Постранично выгружает активности за окно дат и пишет их в activity_routes.",
		Tags:        fetchedTag,
		Security:    security,
		Errors:      jobErrors,
		Middlewares: h.middleware,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/stats",
		Summary:     "Синхронизация глобальной статистики и лидерборда",
		Tags:        fetchedTag,
		Security:    security,
		Errors:      jobErrors,
		Middlewares: h.middleware,
	}
}

func (h *Handler) companiesOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-companies",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/companies",
		Summary:     "Синхронизация компаний и объектов",
		Tags:        fetchedTag,
		Security:    security,
		Errors:      jobErrors,
		Middlewares: h.middleware,
	}
}

func (h *Handler) airQualityOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-air-quality",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/air-quality",
		Summary:     "Синхронизация суточных сводок качества воздуха",
		Description: "Запрашивает сводку за день по каждому настроенному городу. Город без данных возвращается как null.",
		Tags:        fetchedTag,
		Security:    security,
		Errors:      jobErrors,
		Middlewares: h.middleware,
	}
}

func (h *Handler) safetyOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-safety",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/safety",
		Summary:     "Загрузка годовой статистики аварийности",
		Description: "Принимает {city_id, source?, records: [...]} и пишет записи в safety_annual_records.",
		Tags:        fetchedTag,
		Security:    security,
		Errors:      jobErrors,
		Middlewares: h.middleware,
	}
}
