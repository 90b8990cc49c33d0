package loader

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `Rank,Title,Genre,Description,Director,Actors,Year,Runtime (Minutes),Rating,Votes,Revenue (Millions),Metascore
1,Guardians of the Galaxy,"Action,Adventure,Sci-Fi",A group of intergalactic criminals are forced to work together to stop a fanatical warrior from taking control of the universe.,James Gunn,"Chris Pratt, Vin Diesel, Bradley Cooper, Zoe Saldana",2014,121,8.1,757074,333.13,76
2,Prometheus,"Adventure,Mystery,Sci-Fi","Following clues to the origin of mankind, a team finds a structure on a distant moon.",Ridley Scott,"Noomi Rapace, Logan Marshall-Green, Michael Fassbender, Charlize Theron",2012,124,7,485820,126.46,65
3,Split,"Horror,Thriller",Three girls are kidnapped by a man with a diagnosed 23 distinct personalities.,M. Night Shyamalan,"James McAvoy, Anya Taylor-Joy, Haley Lu Richardson, Jessica Sula",2016,117,7.3,157606,138.12,62
4,Sing,"Animation,Comedy,Family","In a city of humanoid animals, a hustling theater impresario's attempt to save his theater.",Christophe Lourdelet,"Matthew McConaughey,Reese Witherspoon, Seth MacFarlane, Scarlett Johansson",2016,108,7.2,60545,270.32,59
x,Broken Row,Drama,,Nobody,,2010,,,,,
5,,Drama,No title,Nobody,,2010,,,,,
6,The Lost City of Z,"Action,Adventure,Biography",A true-life drama.,James Gray,"Charlie Hunnam, Robert Pattinson, Sienna Miller, Tom Holland",2016,141,7.1,7188,8.01,78
7,Mindhorn,Comedy,A has-been actor.,Sean Foley,"Essie Davis, Andrea Riseborough, Julian Barratt,Kenneth Branagh",2016,89,6.4,2490,,71
`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestReadCatalog(t *testing.T) {
	catalog, err := ReadCatalog(strings.NewReader(sampleCatalog), testLogger())
	require.NoError(t, err)

	require.Len(t, catalog.Movies, 6)
	assert.Equal(t, 2, catalog.Skipped)

	gotg := catalog.Movies[0]
	assert.Equal(t, 1, gotg.Rank)
	assert.Equal(t, "Guardians of the Galaxy", gotg.Title)
	assert.Equal(t, 2014, gotg.ReleaseYear)
	assert.Equal(t, 121, gotg.RuntimeMinutes)
	assert.Equal(t, 8.1, gotg.Rating)
	assert.Equal(t, 757074, gotg.Votes)
	require.NotNil(t, gotg.Revenue)
	assert.Equal(t, 333.13, *gotg.Revenue)
	require.NotNil(t, gotg.Metascore)
	assert.Equal(t, 76, *gotg.Metascore)
	assert.Equal(t, "James Gunn", gotg.Director.FullName)
	assert.Equal(t, []string{"Action", "Adventure", "Sci-Fi"}, gotg.GenreNames())
	require.Len(t, gotg.Actors, 4)
	assert.Equal(t, "Chris Pratt", gotg.Actors[0].FullName)
	assert.Equal(t, "Zoe Saldana", gotg.Actors[3].FullName)

	mindhorn := catalog.Movies[5]
	assert.Nil(t, mindhorn.Revenue)
	require.NotNil(t, mindhorn.Metascore)
	assert.Equal(t, 4, len(mindhorn.Actors))
}

func TestReadCatalogSharesReferencedEntities(t *testing.T) {
	catalog, err := ReadCatalog(strings.NewReader(sampleCatalog), testLogger())
	require.NoError(t, err)

	var adventure []string
	for _, g := range catalog.Genres {
		if g.Name == "Adventure" {
			adventure = append(adventure, g.Name)
		}
	}
	assert.Len(t, adventure, 1)
	assert.Same(t, catalog.Movies[0].Genres[1], catalog.Movies[1].Genres[0])
}

func TestReadCatalogRequiresHeaderColumns(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("Rank,Name\n1,Foo\n"), testLogger())
	assert.Error(t, err)

	_, err = ReadCatalog(strings.NewReader(""), testLogger())
	assert.Error(t, err)
}

func TestLoadAndSeed(t *testing.T) {
	repo := repository.New(testLogger())
	catalog, err := ReadCatalog(strings.NewReader(sampleCatalog), testLogger())
	require.NoError(t, err)

	l := New(repo, testLogger())
	l.Load(catalog)

	assert.Equal(t, 6, repo.NumberOfMovies())
	assert.NotNil(t, repo.GetDirector("Ridley Scott"))
	assert.NotNil(t, repo.GetActor("Vin Diesel"))
	assert.ElementsMatch(t, []int{1, 2, 6}, repo.GetMovieRanksForGenre("Adventure"))
	assert.Len(t, repo.GetMoviesByYear(2016), 4)

	require.NoError(t, l.SeedDefaults())
	user := repo.GetUser(DefaultUsername)
	require.NotNil(t, user)
	require.Len(t, user.Reviews, 1)
	assert.Equal(t, DefaultReviewText, user.Reviews[0].Text)
	assert.Same(t, repo.GetMovie(1), user.Reviews[0].Movie)
	assert.Len(t, repo.Reviews(), 1)
}

func TestSeedDefaultsRequiresDefaultMovie(t *testing.T) {
	repo := repository.New(testLogger())
	l := New(repo, testLogger())

	err := l.SeedDefaults()
	assert.ErrorIs(t, err, repository.ErrUnknownMovie)
	assert.Nil(t, repo.GetUser(DefaultUsername))
}

func TestPopulateRunsOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), []byte(sampleCatalog), 0o644))

	repo := repository.New(testLogger())
	l := New(repo, testLogger())

	require.NoError(t, l.Populate(dir, true))
	assert.Equal(t, 6, repo.NumberOfMovies())
	assert.NotNil(t, repo.GetUser(DefaultUsername))

	assert.ErrorIs(t, l.Populate(dir, true), ErrAlreadyPopulated)
	assert.Equal(t, 6, repo.NumberOfMovies())
}

func TestPopulateAfterFailedSeed(t *testing.T) {
	var rows []string
	for _, line := range strings.Split(sampleCatalog, "\n") {
		if !strings.HasPrefix(line, "1,") {
			rows = append(rows, line)
		}
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), []byte(strings.Join(rows, "\n")), 0o644))

	repo := repository.New(testLogger())
	l := New(repo, testLogger())

	assert.ErrorIs(t, l.Populate(dir, true), repository.ErrUnknownMovie)
	assert.Equal(t, 5, repo.NumberOfMovies())

	assert.ErrorIs(t, l.Populate(dir, true), ErrAlreadyPopulated)
	assert.Equal(t, 5, repo.NumberOfMovies())
}

func TestPopulateMissingFile(t *testing.T) {
	l := New(repository.New(testLogger()), testLogger())
	assert.Error(t, l.Populate(t.TempDir(), false))
}
