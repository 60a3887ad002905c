package service

import (
	"context"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"
)

type IProfileService interface {
	CreateProfile(ctx context.Context, userId uint, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetMyProfile(ctx context.Context, userId uint) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, profileId uint) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateImages(ctx context.Context, userId uint, req *dto.UpdateImagesRequest) (*dto.ProfileResponse, error)
	UpdateInterests(ctx context.Context, userId uint, req *dto.UpdateInterestsRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, userId uint, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.CodeProfileAlreadyExists, "Profile already exists")
	}

	profile := &entity.Profile{
		UserId:           userId,
		Nickname:         req.Nickname,
		BirthDate:        req.BirthDate,
		Gender:           entity.Gender(req.Gender),
		Bio:              req.Bio,
		Location:         req.Location,
		ImageUrls:        []string{},
		Interests:        []string{},
		MinAgePreference: 18,
		MaxAgePreference: 99,
		MaxDistance:      50,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}

	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) GetMyProfile(ctx context.Context, userId uint) (*dto.ProfileResponse, error) {
	profile, err := s.findByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) GetProfile(ctx context.Context, profileId uint) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: profileId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound(apperror.CodeProfileNotFound, "Profile not found")
	}
	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.findByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		profile.Nickname = *req.Nickname
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.MinAgePreference != nil {
		profile.MinAgePreference = *req.MinAgePreference
	}
	if req.MaxAgePreference != nil {
		profile.MaxAgePreference = *req.MaxAgePreference
	}
	if profile.MinAgePreference > profile.MaxAgePreference {
		return nil, apperror.BadRequest(apperror.CodeInvalidInput, "minAgePreference cannot exceed maxAgePreference")
	}
	if req.MaxDistance != nil {
		profile.MaxDistance = *req.MaxDistance
	}
	profile.UpdatedAt = time.Now()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) UpdateImages(ctx context.Context, userId uint, req *dto.UpdateImagesRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.findByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	profile.ImageUrls = req.ImageUrls
	profile.UpdatedAt = time.Now()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) UpdateInterests(ctx context.Context, userId uint, req *dto.UpdateInterestsRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.findByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	profile.Interests = req.Interests
	profile.UpdatedAt = time.Now()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return dto.NewProfileResponse(profile, time.Now()), nil
}

func (s *profileService) findByUserId(ctx context.Context, userId uint) (*entity.Profile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound(apperror.CodeProfileNotFound, "Profile not found")
	}
	return profile, nil
}
