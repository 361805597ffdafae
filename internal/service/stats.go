package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"

	"go.uber.org/zap"
)

// StatsService отдаёт сводку по данным пользователя и список его тегов.
type StatsService struct {
	stats  repo.StatsRepository
	tags   repo.TagRepository
	logger *zap.SugaredLogger
}

func NewStatsService(stats repo.StatsRepository, tags repo.TagRepository, logger *zap.SugaredLogger) *StatsService {
	return &StatsService{stats: stats, tags: tags, logger: logger}
}

// Stats возвращает счётчики и последнюю изменённую заметку.
func (s *StatsService) Stats(ctx context.Context, ownerID int64) (*model.Stats, error) {
	st, err := s.stats.Get(ctx, ownerID)
	if err != nil {
		return nil, failure(s.logger, "Stats", ownerID, err)
	}
	return st, nil
}

// Tags возвращает теги, используемые заметками или задачами пользователя.
func (s *StatsService) Tags(ctx context.Context, ownerID int64) ([]model.TagUsage, error) {
	tags, err := s.tags.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, failure(s.logger, "List tags", ownerID, err)
	}
	return tags, nil
}
