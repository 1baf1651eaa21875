package metrics

import (
	"net/http"
	"time"
)

// instrument wraps a metrics-server route so that scrapes and health probes
// show up in http_requests_total and http_request_duration_seconds under route.
// A nil m serves next unchanged.
func instrument(m *Metrics, route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RecordHTTPRequest(route, r.Method, rec.status, time.Since(start).Seconds())
	})
}

// statusRecorder remembers the status a route wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Timer returns a func that reports the time elapsed since start to recordFunc.
//
//	defer metrics.Timer(time.Now(), m.RecordScanDuration)()
func Timer(start time.Time, recordFunc func(float64)) func() {
	return func() {
		recordFunc(time.Since(start).Seconds())
	}
}
