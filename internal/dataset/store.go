package dataset

import (
	"log"
	"sort"
	"sync"

	"coatlas/internal/geo"
)

// Store owns the in-memory dataset for the lifetime of the process. The
// source file is static, so the load happens exactly once, lazily, and the
// result lives until process exit with no invalidation. Every accessor
// recomputes its answer from the loaded snapshot; nothing is mutated after
// the load.
type Store struct {
	filePath string

	once         sync.Once
	regions      []geo.Region
	observations []Observation
	states       []string
	loadErr      error
}

// NewStore creates a store backed by a GeoJSON dataset file. Nothing is read
// until the first accessor call; Warm forces the read for fail-fast startup.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

func (s *Store) load() {
	s.once.Do(func() {
		regions, err := geo.NewReader(s.filePath).ReadRegions()
		if err != nil {
			s.loadErr = err
			return
		}
		s.regions = regions
		s.observations = Reshape(regions, geo.Years)

		states := make([]string, 0, len(regions))
		for _, region := range regions {
			states = append(states, region.State)
		}
		sort.Strings(states)
		s.states = states

		log.Printf("[Store] Dataset ready: %d states, %d observations", len(regions), len(s.observations))
	})
}

// Warm loads the dataset eagerly. Called once at startup so a bad file is
// fatal before the server starts accepting requests.
func (s *Store) Warm() error {
	s.load()
	return s.loadErr
}

// Regions returns the loaded state records in file order.
func (s *Store) Regions() ([]geo.Region, error) {
	s.load()
	return s.regions, s.loadErr
}

// Observations returns the full long-form table (state-contiguous, years
// ascending within a state).
func (s *Store) Observations() ([]Observation, error) {
	s.load()
	return s.observations, s.loadErr
}

// States returns the state names sorted alphabetically, the order the
// selection dropdowns present them in.
func (s *Store) States() ([]string, error) {
	s.load()
	return s.states, s.loadErr
}

// YearSlice pairs one year's observations with the region records whose
// geometries the map needs. Recomputed per call; never cached.
type YearSlice struct {
	Year         int
	Observations []Observation
	Regions      []geo.Region
}

// Slice builds the YearSlice for a year. INVALID_YEAR propagates from
// SelectYear for out-of-range years.
func (s *Store) Slice(year int) (*YearSlice, error) {
	observations, err := s.Observations()
	if err != nil {
		return nil, err
	}
	selected, err := SelectYear(observations, year)
	if err != nil {
		return nil, err
	}
	return &YearSlice{
		Year:         year,
		Observations: selected,
		Regions:      s.regions,
	}, nil
}

// Series returns the five (year, value) points for one state, years
// ascending. INVALID_STATE for unknown states.
func (s *Store) Series(state string) ([]Observation, error) {
	observations, err := s.Observations()
	if err != nil {
		return nil, err
	}
	return SelectState(observations, state)
}
