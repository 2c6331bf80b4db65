package router

import (
	"net/http"

	"messageboard/internal/about"
	messageHandler "messageboard/internal/message"
	"messageboard/internal/metrics"
	"messageboard/middleware"
	"messageboard/socket"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	Messages       *messageHandler.MessageHandler
	Hub            *socket.Hub
	AllowedOrigins []string
	// LogRequests installs the request logger. It is off in test mode.
	LogRequests bool
}

func Setup(opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.BodyParser)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Live feed
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		socket.ServeWs(opts.Hub, w, req)
	}).Methods(http.MethodGet)

	// REST API
	h := opts.Messages
	r.HandleFunc("/messages", h.ListMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages/save", h.SaveMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/{messageId}", h.GetMessage).Methods(http.MethodGet)
	r.HandleFunc("/about", about.GetAbout).Methods(http.MethodGet)

	var handler http.Handler = r
	if opts.LogRequests {
		handler = middleware.Logging(handler)
	}
	handler = middleware.NewCORSMiddleware(opts.AllowedOrigins).Handler(handler)

	return otelhttp.NewHandler(handler, "messageboard")
}
