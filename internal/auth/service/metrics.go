package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts auth events by outcome. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	authns        *prometheus.CounterVec
	accessChecks  *prometheus.CounterVec
	resets        *prometheus.CounterVec
	mail          *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qure",
			Subsystem: "auth",
			Name:      name,
			Help:      help,
		}, labels)
		reg.MustRegister(c)
		return c
	}

	return &Metrics{
		registrations: counter("registrations_total", "Registration attempts by role and outcome.", "role", "outcome"),
		logins:        counter("logins_total", "Login attempts by outcome.", "outcome"),
		authns:        counter("authentications_total", "Bearer token checks by outcome.", "outcome"),
		accessChecks:  counter("access_verifications_total", "Hospital access-code checks by outcome.", "outcome"),
		resets:        counter("password_resets_total", "Password-reset operations by stage and outcome.", "stage", "outcome"),
		mail:          counter("mail_deliveries_total", "Outbound mail by template and outcome.", "template", "outcome"),
	}
}

// outcome labels err: "ok", the error kind, or "error" when unclassified.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k, ok := KindOf(err); ok {
		return k.String()
	}
	return "error"
}

func (m *Metrics) registration(role string, err error) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(role, outcome(err)).Inc()
}

func (m *Metrics) login(err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) authn(err error) {
	if m == nil {
		return
	}
	m.authns.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) accessCheck(err error) {
	if m == nil {
		return
	}
	m.accessChecks.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) reset(stage string, err error) {
	if m == nil {
		return
	}
	m.resets.WithLabelValues(stage, outcome(err)).Inc()
}

func (m *Metrics) delivery(template string, err error) {
	if m == nil {
		return
	}
	m.mail.WithLabelValues(template, outcome(err)).Inc()
}
