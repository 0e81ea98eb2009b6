// Package metrics holds the Prometheus instrumentation for the order
// pipeline. A single Registry is created in the composition root and shared
// by the handlers that record outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersAdmitted  prometheus.Counter
	OrdersRejected  prometheus.Counter
	OrdersDuplicate prometheus.Counter

	Transitions        prometheus.Counter
	ExceptionsRaised   prometheus.Counter
	ExceptionsResolved prometheus.Counter
	BatchesCreated     prometheus.Counter

	MailFailures prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	admitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_orders_admitted_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_orders_rejected_total"})
	duplicate := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_orders_duplicate_total"})
	transitions := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_status_transitions_total"})
	raised := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_exceptions_raised_total"})
	resolved := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_exceptions_resolved_total"})
	batches := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_batches_created_total"})
	mailFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordercart_mail_failures_total"})

	r.MustRegister(admitted, rejected, duplicate, transitions, raised, resolved, batches, mailFailures)
	return &Registry{
		reg:                r,
		OrdersAdmitted:     admitted,
		OrdersRejected:     rejected,
		OrdersDuplicate:    duplicate,
		Transitions:        transitions,
		ExceptionsRaised:   raised,
		ExceptionsResolved: resolved,
		BatchesCreated:     batches,
		MailFailures:       mailFailures,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
