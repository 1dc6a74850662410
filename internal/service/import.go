package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"runcoach/internal/importer"
	"runcoach/internal/store"
)

// ImportService ingests workout files into the store
type ImportService struct {
	store *store.DB
	log   zerolog.Logger
}

// NewImportService creates an import service
func NewImportService(db *store.DB, log zerolog.Logger) *ImportService {
	return &ImportService{store: db, log: log}
}

// ImportFiles parses and stores each .fit file. A file that fails to
// parse is logged and skipped; the batch continues. Returns the number
// of workouts imported and an error only when nothing succeeded.
func (s *ImportService) ImportFiles(paths []string) (int, error) {
	imported := 0
	for _, path := range paths {
		w, err := importer.ParseFile(path)
		if err != nil {
			s.log.Warn().Err(err).Str("file", path).Msg("skipping file")
			continue
		}

		id, err := s.store.InsertWorkout(w)
		if err != nil {
			s.log.Error().Err(err).Str("file", path).Msg("storing workout failed")
			continue
		}

		s.log.Info().
			Int64("id", id).
			Str("file", path).
			Float64("miles", w.DistanceMiles).
			Int("splits", len(w.Splits)).
			Time("date", w.Date).
			Msg("imported workout")
		imported++
	}

	if imported == 0 && len(paths) > 0 {
		return 0, fmt.Errorf("no workouts imported from %d file(s)", len(paths))
	}
	return imported, nil
}
