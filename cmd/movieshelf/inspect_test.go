package main

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInspectService(t *testing.T) *catalog.Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := repository.New(logger)
	action := &models.Genre{Name: "Action"}
	repo.AddGenre(action)
	require.NoError(t, repo.AddMovie(&models.Movie{Rank: 1, Title: "Guardians of the Galaxy", ReleaseYear: 2014, Genres: []*models.Genre{action}}))
	require.NoError(t, repo.AddMovie(&models.Movie{Rank: 2, Title: "Prometheus", ReleaseYear: 2012}))
	return catalog.NewService(repo, &sync.RWMutex{}, logger)
}

func TestInspectRank(t *testing.T) {
	var out bytes.Buffer
	opts := &inspectOptions{rank: 2}
	require.NoError(t, opts.run(newInspectService(t), &out))
	assert.Contains(t, out.String(), `"Prometheus"`)

	opts.rank = 99
	assert.EqualError(t, opts.run(newInspectService(t), &out), "no movie with rank 99")
}

func TestInspectYearAndGenre(t *testing.T) {
	svc := newInspectService(t)

	var out bytes.Buffer
	require.NoError(t, (&inspectOptions{year: 2014}).run(svc, &out))
	assert.Contains(t, out.String(), `"previous_year": 2012`)

	out.Reset()
	require.NoError(t, (&inspectOptions{genre: "Action"}).run(svc, &out))
	assert.Contains(t, out.String(), "Guardians of the Galaxy")
	assert.NotContains(t, out.String(), "Prometheus")
}

func TestInspectStats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&inspectOptions{}).run(newInspectService(t), &out))
	assert.Contains(t, out.String(), `"movies": 2`)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "inspect"}, names)
}
