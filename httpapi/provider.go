package httpapi

import (
	"github.com/tech-arch1tect/mfakit/server"
	"go.uber.org/fx"
)

func RegisterRoutes(handler *Handler, srv *server.Server) {
	handler.Register(srv)
}

var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
