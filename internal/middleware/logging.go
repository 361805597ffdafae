package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// SetLogger задаёт логгер для мидлварей пакета.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		log = l
	}
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.data.status == 0 {
		w.data.status = http.StatusOK
	}
	size, err := w.ResponseWriter.Write(b)
	w.data.size += size
	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	if w.data.status == 0 {
		w.data.status = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// WithLogging пишет в лог метод, путь, статус, размер ответа и длительность запроса.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		data := &responseData{}
		lw := &loggingResponseWriter{ResponseWriter: w, data: data}

		next.ServeHTTP(lw, r)

		status := data.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Infow("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", status,
			"size", data.size,
			"duration", time.Since(start),
		)
	})
}
