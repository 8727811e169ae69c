// Copyright © 2019 NVIDIA Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httputil

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments HTTP clients. The collectors share a name prefix,
// typically the storage driver using them.
type Metrics struct {
	inFlight   prometheus.Gauge
	requests   *prometheus.CounterVec
	dnsLatency *prometheus.HistogramVec
	tlsLatency *prometheus.HistogramVec
	latency    *prometheus.HistogramVec
}

func NewMetrics(prefix string) *Metrics {
	return &Metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_in_flight_requests",
			Help: "A gauge of in-flight requests for the wrapped client.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_api_requests_total",
				Help: "A counter for requests from the wrapped client.",
			},
			[]string{"code", "method"},
		),
		dnsLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_dns_duration_seconds",
				Help:    "Trace dns latency histogram.",
				Buckets: []float64{.005, .01, .025, .05},
			},
			[]string{"event"},
		),
		tlsLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_tls_duration_seconds",
				Help:    "Trace tls latency histogram.",
				Buckets: []float64{.05, .1, .25, .5},
			},
			[]string{"event"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_request_duration_seconds",
				Help:    "A histogram of request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.requests, m.tlsLatency, m.dnsLatency, m.latency, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RoundTripper wraps trans with middleware feeding m.
func (m *Metrics) RoundTripper(trans http.RoundTripper) http.RoundTripper {
	trace := &promhttp.InstrumentTrace{
		DNSStart: func(t float64) {
			m.dnsLatency.WithLabelValues("dns_start").Observe(t)
		},
		DNSDone: func(t float64) {
			m.dnsLatency.WithLabelValues("dns_done").Observe(t)
		},
		TLSHandshakeStart: func(t float64) {
			m.tlsLatency.WithLabelValues("tls_handshake_start").Observe(t)
		},
		TLSHandshakeDone: func(t float64) {
			m.tlsLatency.WithLabelValues("tls_handshake_done").Observe(t)
		},
	}

	return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
		promhttp.InstrumentRoundTripperCounter(m.requests,
			promhttp.InstrumentRoundTripperTrace(trace,
				promhttp.InstrumentRoundTripperDuration(m.latency, trans),
			),
		),
	)
}

// WithMetrics instruments trans with collectors registered in the default
// registry. It panics if prefix is already in use.
func WithMetrics(trans http.RoundTripper, prefix string) http.RoundTripper {
	m := NewMetrics(prefix)
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
	return m.RoundTripper(trans)
}
