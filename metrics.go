package folio

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	postRenders  *prometheus.CounterVec
	imageResizes *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		postRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "post_renders_total",
			Help:      "Post page renders by outcome.",
		}, []string{"outcome"}),
		imageResizes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "image_resizes_total",
			Help:      "Image optimizer requests by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.postRenders, m.imageResizes)
	return m
}
