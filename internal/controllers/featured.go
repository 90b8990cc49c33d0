package controllers

import (
	"sync"
	"time"

	"github.com/amaumene/movieshelf/internal/metrics"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/sirupsen/logrus"
)

// FeaturedController keeps the set of movies highlighted on the front page
type FeaturedController struct {
	catalog *catalog.Service
	count   int
	logger  *logrus.Logger

	mu        sync.RWMutex
	current   []*models.Movie
	rotatedAt time.Time
}

// NewFeaturedController creates a featured controller picking count movies
func NewFeaturedController(catalogSvc *catalog.Service, count int, logger *logrus.Logger) *FeaturedController {
	return &FeaturedController{
		catalog: catalogSvc,
		count:   count,
		logger:  logger,
	}
}

// Rotate replaces the featured movies with a fresh random selection
func (c *FeaturedController) Rotate() []*models.Movie {
	picked := c.catalog.RandomMovies(c.count)

	c.mu.Lock()
	c.current = picked
	c.rotatedAt = time.Now()
	c.mu.Unlock()

	metrics.FeaturedRotationsTotal.Inc()

	ranks := make([]int, 0, len(picked))
	for _, m := range picked {
		ranks = append(ranks, m.Rank)
	}
	c.logger.WithField("ranks", ranks).Info("Featured movies rotated")
	return picked
}

// Current returns the featured movies, rotating first if none were picked yet
func (c *FeaturedController) Current() []*models.Movie {
	c.mu.RLock()
	current := c.current
	rotated := !c.rotatedAt.IsZero()
	c.mu.RUnlock()

	if !rotated {
		return c.Rotate()
	}
	out := make([]*models.Movie, len(current))
	copy(out, current)
	return out
}

// RotatedAt returns when the featured movies were last picked
func (c *FeaturedController) RotatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rotatedAt
}
