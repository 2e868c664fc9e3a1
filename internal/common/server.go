package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseType selects how an endpoint's body is written back.
type ResponseType string

const (
	JSONResponse  ResponseType = "json"
	DataResponse  ResponseType = "application/octet-stream"
	ErrorResponse ResponseType = "error"
	NoResponse    ResponseType = "no response"
)

// Endpoint is one routed handler. Handlers return what to send instead of
// writing to the context directly, so logging and error rendering stay in
// one place.
type Endpoint struct {
	Method   string
	Path     string
	Function func(c *gin.Context) (ResponseType, int, any)
}

// HttpServer hosts a set of endpoints behind a shared request logger.
type HttpServer struct {
	Addr       string
	HttpLogger *Logger
	endpoints  []Endpoint
}

func NewHttpServer(addr string, logger *Logger, endpoints []Endpoint) *HttpServer {
	return &HttpServer{
		Addr:       addr,
		HttpLogger: GetLogger("http", logger),
		endpoints:  endpoints,
	}
}

// Router builds the gin engine with every endpoint wrapped in request
// logging and uniform response rendering.
func (h *HttpServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	wrap := func(fn func(c *gin.Context) (ResponseType, int, any)) gin.HandlerFunc {
		return func(c *gin.Context) {
			h.HttpLogger.Info("%s -->   %-6s   %s", c.RemoteIP(), c.Request.Method, c.Request.URL.String())
			responseType, code, body := fn(c)
			switch responseType {
			case JSONResponse:
				c.JSON(code, body)
			case DataResponse:
				c.Data(code, "application/octet-stream", body.([]byte))
			case NoResponse:
				c.Status(code)
			case ErrorResponse:
				switch v := body.(type) {
				case error:
					h.HttpLogger.Err(v)
					c.JSON(code, gin.H{"error": v.Error()})
				case string:
					h.HttpLogger.Error(v)
					c.JSON(code, gin.H{"error": v})
				default:
					c.Status(http.StatusInternalServerError)
				}
			}
		}
	}

	for _, endpoint := range h.endpoints {
		router.Handle(endpoint.Method, endpoint.Path, wrap(endpoint.Function))
	}
	return router
}

// Run serves until the listener fails.
func (h *HttpServer) Run() error {
	if err := h.Router().Run(h.Addr); err != nil {
		h.HttpLogger.Err(err)
		return err
	}
	return nil
}
