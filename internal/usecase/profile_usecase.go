package usecase

import (
	"context"
	"errors"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	searchLimit  = 20
	suggestLimit = 10
)

type profileUsecase struct {
	userRepo domain.UserRepository
	images   domain.ImageStore
	validate *validator.Validate
}

func NewProfileUsecase(userRepo domain.UserRepository, images domain.ImageStore) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo: userRepo,
		images:   images,
		validate: validator.New(),
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *profileUsecase) GetDetailedProfile(ctx context.Context, currentUserID, userID string) (*domain.DetailedProfile, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.DetailedProfile{
		User:            *user,
		ConnectionCount: len(user.Connections),
		IsConnected:     contains(user.Connections, currentUserID),
	}
	profile.Connections = nil
	return profile, nil
}

// UpdateProfile merges only the fields the patch actually carries; empty
// strings and empty slices leave the stored value untouched.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.User, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	applyString(&user.Name, patch.Name)
	applyString(&user.CurrentJob, patch.CurrentJob)
	applyString(&user.Bio, patch.Bio)
	applyString(&user.Location, patch.Location)
	applyString(&user.Company, patch.Company)
	applyString(&user.JobTitle, patch.JobTitle)
	applyString(&user.LinkedInProfile, patch.LinkedInProfile)
	applyString(&user.University, patch.University)
	applyString(&user.Degree, patch.Degree)
	applyString(&user.Major, patch.Major)
	applyString(&user.Minor, patch.Minor)

	if patch.GraduationYear != 0 {
		user.GraduationYear = patch.GraduationYear
	}
	if len(patch.Skills) > 0 {
		user.Skills = patch.Skills
	}
	if len(patch.Achievements) > 0 {
		user.Achievements = patch.Achievements
	}
	if len(patch.Interests) > 0 {
		user.Interests = patch.Interests
	}
	if !patch.PrivacySettings.IsEmpty() {
		if patch.PrivacySettings.ShowEmail != nil {
			user.PrivacySettings.ShowEmail = *patch.PrivacySettings.ShowEmail
		}
		if patch.PrivacySettings.ShowPhone != nil {
			user.PrivacySettings.ShowPhone = *patch.PrivacySettings.ShowPhone
		}
		if patch.PrivacySettings.ShowLocation != nil {
			user.PrivacySettings.ShowLocation = *patch.PrivacySettings.ShowLocation
		}
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *profileUsecase) AddWorkExperience(ctx context.Context, userID string, exp *domain.WorkExperience) (*domain.User, error) {
	if err := u.validate.Struct(exp); err != nil {
		return nil, apperror.BadRequest("Company, position and start date are required")
	}

	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.NewString()
	user.WorkExperience = append(user.WorkExperience, *exp)

	if err := u.userRepo.UpdateWorkExperience(ctx, userID, user.WorkExperience); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *profileUsecase) UpdateWorkExperience(ctx context.Context, userID, experienceID string, exp *domain.WorkExperience) (*domain.User, error) {
	if err := u.validate.Struct(exp); err != nil {
		return nil, apperror.BadRequest("Company, position and start date are required")
	}

	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range user.WorkExperience {
		if user.WorkExperience[i].ID == experienceID {
			exp.ID = experienceID
			user.WorkExperience[i] = *exp
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NotFound("Work experience not found")
	}

	if err := u.userRepo.UpdateWorkExperience(ctx, userID, user.WorkExperience); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *profileUsecase) DeleteWorkExperience(ctx context.Context, userID, experienceID string) (*domain.User, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := user.WorkExperience[:0]
	found := false
	for _, entry := range user.WorkExperience {
		if entry.ID == experienceID {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return nil, apperror.NotFound("Work experience not found")
	}
	user.WorkExperience = kept

	if err := u.userRepo.UpdateWorkExperience(ctx, userID, user.WorkExperience); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *profileUsecase) SearchAlumni(ctx context.Context, filter domain.AlumniFilter) ([]domain.User, error) {
	users, err := u.userRepo.Search(ctx, filter, searchLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *profileUsecase) SuggestConnections(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	suggestions, err := u.userRepo.Suggest(ctx, user, suggestLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return suggestions, nil
}

func (u *profileUsecase) AddConnection(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return apperror.BadRequest("Cannot connect to yourself")
	}

	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if contains(user.Connections, targetID) {
		return apperror.BadRequest("Already connected")
	}

	if _, err := u.GetProfile(ctx, targetID); err != nil {
		return err
	}

	if err := u.userRepo.AddConnection(ctx, userID, targetID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// RemoveConnection is idempotent: removing an absent connection succeeds.
func (u *profileUsecase) RemoveConnection(ctx context.Context, userID, targetID string) error {
	if _, err := u.GetProfile(ctx, targetID); err != nil {
		return err
	}

	if err := u.userRepo.RemoveConnection(ctx, userID, targetID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) GetConnections(ctx context.Context, currentUserID, userID string) ([]domain.UserSummary, error) {
	if userID == "" {
		userID = currentUserID
	}

	if _, err := u.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	connections, err := u.userRepo.GetConnections(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return connections, nil
}

func (u *profileUsecase) UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	url, key, err := u.images.Upload(ctx, "profile_images", data, contentType)
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := u.userRepo.UpdateImage(ctx, userID, url, key); err != nil {
		return "", apperror.Internal(err)
	}

	// Best effort: a stale object in the store is harmless.
	if user.ProfileImageID != "" {
		if err := u.images.Delete(ctx, user.ProfileImageID); err != nil {
			logger.Log.Warn("failed to delete old profile image", "user_id", userID, "error", err)
		}
	}
	return url, nil
}

func (u *profileUsecase) RemoveProfileImage(ctx context.Context, userID string) (string, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.ProfileImage == "" {
		return "", apperror.BadRequest("No profile image to remove")
	}

	if err := u.userRepo.UpdateImage(ctx, userID, "", ""); err != nil {
		return "", apperror.Internal(err)
	}

	if user.ProfileImageID != "" {
		if err := u.images.Delete(ctx, user.ProfileImageID); err != nil {
			logger.Log.Warn("failed to delete profile image object", "user_id", userID, "error", err)
		}
	}
	return user.ProfileImage, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
