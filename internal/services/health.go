package services

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
)

type HealthService struct {
	config      *config.Config
	logger      *logrus.Logger
	recommender *RecommenderService
	startedAt   time.Time

	catalogSize   *prometheus.GaugeVec
	ratingCount   *prometheus.GaugeVec
	systemMetrics *prometheus.GaugeVec
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Catalogs  map[string]int    `json:"catalogs"`
	Engines   map[string]string `json:"engines"`
}

func NewHealthService(cfg *config.Config, logger *logrus.Logger, recommender *RecommenderService) *HealthService {
	hs := &HealthService{
		config:      cfg,
		logger:      logger,
		recommender: recommender,
		startedAt:   time.Now(),
	}

	hs.catalogSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_items",
		Help: "Number of catalog items per domain",
	}, []string{"domain"})

	hs.ratingCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rating_events",
		Help: "Number of rating events ingested per domain",
	}, []string{"domain"})

	hs.systemMetrics = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "system_info",
		Help: "System information metrics",
	}, []string{"metric_type"})

	for _, collector := range []prometheus.Collector{hs.catalogSize, hs.ratingCount, hs.systemMetrics} {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logger.WithError(err).Warn("Failed to register health metric")
			}
		}
	}

	go hs.collectSystemMetrics()

	return hs
}

// CheckHealth reports engine readiness. A domain with an empty catalog is
// degraded; the process is healthy once every domain has items.
func (s *HealthService) CheckHealth() *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Catalogs:  make(map[string]int),
		Engines:   make(map[string]string),
	}

	for domain, size := range s.recommender.CatalogSizes() {
		status.Catalogs[string(domain)] = size
		s.catalogSize.WithLabelValues(string(domain)).Set(float64(size))
		if size == 0 {
			status.Status = "degraded"
		}

		engine, _ := s.recommender.Engine(domain)
		mode := "cosine"
		if engine.Collaborative().UsesMatrixFactorization() {
			mode = "matrix_factorization"
		}
		status.Engines[string(domain)] = mode
		s.ratingCount.WithLabelValues(string(domain)).Set(float64(engine.Collaborative().RatingCount()))
	}

	return status
}

func (s *HealthService) collectSystemMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		s.systemMetrics.WithLabelValues("goroutines").Set(float64(runtime.NumGoroutine()))
		s.systemMetrics.WithLabelValues("memory_alloc_bytes").Set(float64(m.Alloc))
		s.systemMetrics.WithLabelValues("gc_runs").Set(float64(m.NumGC))
	}
}
