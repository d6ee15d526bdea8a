/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package connector

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelCode   = "code"
	labelMethod = "method"
	labelHost   = "host"
)

// Instrumentation records client side request metrics for every exchange
// with the management service.
type Instrumentation struct {
	ReqDurationBuckets []float64
	Namespace          string
	Subsystem          string
	Labels             map[string]string
	Registerer         prometheus.Registerer
	reqTotal           *prometheus.CounterVec
	reqDurationSecs    *prometheus.HistogramVec
	resSizeBytes       *prometheus.SummaryVec
}

// NewInstrumentation returns an instrumentation registered on reg
func NewInstrumentation(reg prometheus.Registerer) *Instrumentation {
	i := Instrumentation{
		Namespace:          "rsdfish",
		Subsystem:          "client",
		ReqDurationBuckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		Registerer:         reg,
	}

	i.initMetrics()
	return &i
}

// RoundTripper wraps next so that every attempt, retries included, is
// counted.
func (i *Instrumentation) RoundTripper(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		startTime := time.Now()
		resp, err := next.RoundTrip(r)

		code := "error"
		if err == nil {
			code = strconv.Itoa(resp.StatusCode)
		}
		labelVals := []string{code, r.Method, r.URL.Host}
		i.reqTotal.WithLabelValues(labelVals...).Inc()
		i.reqDurationSecs.WithLabelValues(labelVals...).Observe(time.Since(startTime).Seconds())
		if err == nil && resp.ContentLength >= 0 {
			i.resSizeBytes.WithLabelValues(labelVals...).Observe(float64(resp.ContentLength))
		}
		return resp, err
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// initMetrics initializes all the prometheus metrics
func (i *Instrumentation) initMetrics() {
	i.reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "requests_total",
		Subsystem: i.Subsystem,
		Namespace: i.Namespace,
		Help:      "The total number of requests sent to the management service",
	}, []string{labelCode, labelMethod, labelHost})

	i.reqDurationSecs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:      "request_duration_seconds",
		Subsystem: i.Subsystem,
		Namespace: i.Namespace,
		Help:      "Histogram of the request duration",
		Buckets:   i.ReqDurationBuckets,
	}, []string{labelCode, labelMethod, labelHost})

	i.resSizeBytes = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      "response_size_bytes",
		Subsystem: i.Subsystem,
		Namespace: i.Namespace,
		Help:      "Summary of response bytes received",
	}, []string{labelCode, labelMethod, labelHost})

	if i.Registerer == nil {
		return
	}
	reg := prometheus.WrapRegistererWith(i.Labels, i.Registerer)
	reg.MustRegister(
		i.reqTotal,
		i.reqDurationSecs,
		i.resSizeBytes,
	)
}
