package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Middleware сигнатура huma middleware
type Middleware = func(ctx huma.Context, next func(huma.Context))

// Container накапливает мидлвари для следующего обработчика
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add добавляет мидлвари в порядке выполнения
func (mc *Container) Add(mws ...Middleware) *Container {
	for _, mw := range mws {
		mc.Middlewares = append(mc.Middlewares, mw)
	}
	return mc
}

// GetAllAndClear возвращает накопленные мидлвари и очищает контейнер
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
