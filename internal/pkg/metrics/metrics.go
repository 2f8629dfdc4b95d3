package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Attendance event labels
const (
	EventCheckIn  = "check_in"
	EventCheckOut = "check_out"
)

var (
	// AttendanceEvents counts persisted check-in/check-out events
	AttendanceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrm",
		Name:      "attendance_events_total",
		Help:      "Attendance events recorded, by event and geofence result.",
	}, []string{"event", "within_radius"})

	// AuthEvents counts session manager outcomes
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrm",
		Name:      "auth_events_total",
		Help:      "Login, refresh and logout outcomes.",
	}, []string{"action", "result"})
)

// ObserveAttendance records one attendance event
func ObserveAttendance(event string, withinRadius bool) {
	AttendanceEvents.WithLabelValues(event, strconv.FormatBool(withinRadius)).Inc()
}

// ObserveAuth records one auth outcome, e.g. ("login", "success")
func ObserveAuth(action, result string) {
	AuthEvents.WithLabelValues(action, result).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
