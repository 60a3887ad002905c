package service

import (
	"context"
	"errors"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/entity"
	"dating-app-be/internal/pkg/logger"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"
	"dating-app-be/pkg/events"
	pktNats "dating-app-be/pkg/nats"

	"gorm.io/gorm"
)

const candidateLimit = 10

type IMatchService interface {
	GetCandidates(ctx context.Context, userId uint) ([]*dto.ProfileResponse, error)
	Like(ctx context.Context, userId, targetProfileId uint) (*dto.MatchResponse, error)
	Pass(ctx context.Context, userId, targetProfileId uint) (*dto.MatchResponse, error)
	GetMyMatches(ctx context.Context, userId uint) ([]*dto.MatchResponse, error)
}

type matchService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewMatchService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IMatchService {
	return &matchService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// GetCandidates returns profiles the user has not acted on whose age falls
// inside the user's own preference window. The candidate's preferences are
// not consulted; they get their own say when the deck is dealt to them.
func (s *matchService) GetCandidates(ctx context.Context, userId uint) ([]*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	acted, err := uow.MatchRepository().FindAll(ctx, specification.ByFromProfile{ProfileID: me.Id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	actedOn := make(map[uint]bool, len(acted))
	for _, m := range acted {
		actedOn[m.ToProfileId] = true
	}

	profiles, err := uow.ProfileRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()

	candidates := make([]*dto.ProfileResponse, 0, candidateLimit)
	for _, p := range profiles {
		if p.Id == me.Id || actedOn[p.Id] {
			continue
		}
		if !me.AcceptsAge(p.Age(now)) {
			continue
		}
		candidates = append(candidates, dto.NewProfileResponse(p, now))
		if len(candidates) == candidateLimit {
			break
		}
	}
	return candidates, nil
}

func (s *matchService) Like(ctx context.Context, userId, targetProfileId uint) (*dto.MatchResponse, error) {
	return s.recordAction(ctx, userId, targetProfileId, entity.MatchActionLike)
}

func (s *matchService) Pass(ctx context.Context, userId, targetProfileId uint) (*dto.MatchResponse, error) {
	return s.recordAction(ctx, userId, targetProfileId, entity.MatchActionPass)
}

// recordAction writes the directed row and, for a reciprocated like, flags
// both directions inside the same transaction. The confirmation event only
// fires after commit.
func (s *matchService) recordAction(ctx context.Context, userId, targetProfileId uint, action entity.MatchAction) (*dto.MatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if me.Id == targetProfileId {
		return nil, apperror.Forbidden(apperror.CodeSelfMatchNotAllowed, "Cannot match with yourself")
	}

	target, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: targetProfileId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if target == nil {
		return nil, apperror.NotFound(apperror.CodeProfileNotFound, "Profile not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	match := &entity.Match{
		FromProfileId: me.Id,
		ToProfileId:   targetProfileId,
		Action:        action,
		CreatedAt:     time.Now(),
	}
	if err := uow.MatchRepository().Create(ctx, match); err != nil {
		// The unique index on (from, to) makes the first action final.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(apperror.CodeAlreadyMatched, "Action already recorded for this profile")
		}
		return nil, apperror.Internal(err)
	}

	var reverse *entity.Match
	if action == entity.MatchActionLike {
		reverse, err = uow.MatchRepository().FindOne(ctx, specification.ByOrderedPair{
			FromProfileID: targetProfileId,
			ToProfileID:   me.Id,
		})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if reverse != nil && reverse.Action == entity.MatchActionLike {
			match.MarkAsMatched()
			reverse.MarkAsMatched()
			if err := uow.MatchRepository().Update(ctx, match); err != nil {
				return nil, apperror.Internal(err)
			}
			if err := uow.MatchRepository().Update(ctx, reverse); err != nil {
				return nil, apperror.Internal(err)
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	if match.IsMatched {
		s.publishMatchConfirmed(ctx, match, me.UserId, target.UserId)
	}

	return dto.NewMatchResponse(match), nil
}

func (s *matchService) GetMyMatches(ctx context.Context, userId uint) ([]*dto.MatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := s.requireProfile(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	matches, err := uow.MatchRepository().FindAll(ctx,
		specification.ByFromProfile{ProfileID: me.Id},
		specification.MatchedOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	responses := make([]*dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, dto.NewMatchResponse(m))
	}
	return responses, nil
}

func (s *matchService) requireProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (*entity.Profile, error) {
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound(apperror.CodeProfileNotFound, "Profile not found")
	}
	return profile, nil
}

func (s *matchService) publishMatchConfirmed(ctx context.Context, match *entity.Match, fromUserId, toUserId uint) {
	if s.eventPublisher == nil {
		return
	}
	event := events.MatchConfirmedEvent{
		MatchId:       match.Id,
		FromProfileId: match.FromProfileId,
		ToProfileId:   match.ToProfileId,
		FromUserId:    fromUserId,
		ToUserId:      toUserId,
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("match_service", "failed to publish match.confirmed", map[string]interface{}{
			"match_id": match.Id,
			"error":    err.Error(),
		})
	}
}
