package main

import (
	"flag"
	"log"
	gohttp "net/http"
	"os"
	"time"

	"github.com/tilezen/go-tilesystem/http"
)

func loggingMiddleware(logger *log.Logger) func(gohttp.Handler) gohttp.Handler {
	return func(next gohttp.Handler) gohttp.Handler {
		return gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
			defer func() {
				logger.Println(r.Method, r.URL.Path, r.RemoteAddr, r.UserAgent())
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func newRouter() *gohttp.ServeMux {
	router := gohttp.NewServeMux()
	router.Handle("/pixel/", http.PixelHandler())
	router.Handle("/geo/", http.GeoHandler())
	router.HandleFunc("/", defaultHandler)
	return router
}

func main() {
	addr := flag.String("listen", ":8080", "The address and port to listen on")
	flag.Parse()

	logger := log.New(os.Stdout, "http: ", log.LstdFlags)

	server := &gohttp.Server{
		Addr:         *addr,
		Handler:      loggingMiddleware(logger)(newRouter()),
		ErrorLog:     logger,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	logger.Printf("Listening on %s", *addr)

	if err := server.ListenAndServe(); err != nil && err != gohttp.ErrServerClosed {
		logger.Fatalf("Could not listen on %s: %v\n", *addr, err)
	}
}

func defaultHandler(w gohttp.ResponseWriter, r *gohttp.Request) {
	gohttp.NotFound(w, r)
}
