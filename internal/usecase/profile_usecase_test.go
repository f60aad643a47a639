package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func someDate() time.Time {
	return time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()

	t.Run("Should skip empty fields and apply present ones", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		stored := &domain.User{
			ID:       "u1",
			Name:     "Old Name",
			Bio:      "Old bio",
			Skills:   []string{"Go"},
			Location: "Pune",
		}
		mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)
		mockRepo.On("UpdateProfile", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		patch := &domain.ProfilePatch{Name: "New Name"}
		user, err := uc.UpdateProfile(ctx, "u1", patch)
		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "Old bio", user.Bio)
		assert.Equal(t, []string{"Go"}, user.Skills)
		assert.Equal(t, "Pune", user.Location)
	})

	t.Run("Should apply only the privacy flags present in the patch", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		stored := &domain.User{
			ID:              "u1",
			PrivacySettings: domain.PrivacySettings{ShowEmail: true, ShowPhone: true},
		}
		mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)
		mockRepo.On("UpdateProfile", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		showEmail := false
		patch := &domain.ProfilePatch{
			PrivacySettings: &domain.PrivacyPatch{ShowEmail: &showEmail},
		}
		user, err := uc.UpdateProfile(ctx, "u1", patch)
		assert.NoError(t, err)
		assert.False(t, user.PrivacySettings.ShowEmail)
		assert.True(t, user.PrivacySettings.ShowPhone)
	})
}

func TestDetailedProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace raw connections with count and flag", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u2").Return(&domain.User{
			ID:          "u2",
			Connections: []string{"u1", "u3"},
		}, nil)

		profile, err := uc.GetDetailedProfile(ctx, "u1", "u2")
		assert.NoError(t, err)
		assert.Equal(t, 2, profile.ConnectionCount)
		assert.True(t, profile.IsConnected)
		assert.Nil(t, profile.Connections)
	})

	t.Run("Should report not connected for strangers", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2"}, nil)

		profile, err := uc.GetDetailedProfile(ctx, "u1", "u2")
		assert.NoError(t, err)
		assert.Equal(t, 0, profile.ConnectionCount)
		assert.False(t, profile.IsConnected)
	})
}

func TestConnections(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject self-connection", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		err := uc.AddConnection(ctx, "u1", "u1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		mockRepo.AssertNotCalled(t, "AddConnection")
	})

	t.Run("Should reject an existing connection", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{
			ID:          "u1",
			Connections: []string{"u2"},
		}, nil)

		err := uc.AddConnection(ctx, "u1", "u2")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "Already connected")
		mockRepo.AssertNotCalled(t, "AddConnection")
	})

	t.Run("Should 404 on an absent target", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		mockRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		err := uc.AddConnection(ctx, "u1", "ghost")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		mockRepo.AssertNotCalled(t, "AddConnection")
	})

	t.Run("Should add both directions through the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		mockRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2"}, nil)
		mockRepo.On("AddConnection", ctx, "u1", "u2").Return(nil)

		assert.NoError(t, uc.AddConnection(ctx, "u1", "u2"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Removal is idempotent", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2"}, nil)
		mockRepo.On("RemoveConnection", ctx, "u1", "u2").Return(nil)

		assert.NoError(t, uc.RemoveConnection(ctx, "u1", "u2"))
		assert.NoError(t, uc.RemoveConnection(ctx, "u1", "u2"))
	})
}

func TestWorkExperience(t *testing.T) {
	ctx := context.Background()

	t.Run("Should assign an id on add", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		mockRepo.On("UpdateWorkExperience", ctx, "u1", mock.Anything).Return(nil)

		exp := &domain.WorkExperience{Company: "Acme", Position: "Engineer", StartDate: someDate()}
		user, err := uc.AddWorkExperience(ctx, "u1", exp)
		assert.NoError(t, err)
		assert.Len(t, user.WorkExperience, 1)
		assert.NotEmpty(t, user.WorkExperience[0].ID)
	})

	t.Run("Should 404 when updating an unknown entry", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{
			ID:             "u1",
			WorkExperience: []domain.WorkExperience{{ID: "we1", Company: "Acme", Position: "Engineer"}},
		}, nil)

		exp := &domain.WorkExperience{Company: "Acme", Position: "Senior Engineer", StartDate: someDate()}
		_, err := uc.UpdateWorkExperience(ctx, "u1", "missing", exp)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		mockRepo.AssertNotCalled(t, "UpdateWorkExperience")
	})

	t.Run("Should reject an entry missing required fields", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		_, err := uc.AddWorkExperience(ctx, "u1", &domain.WorkExperience{Company: "Acme"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})
}

func TestProfileImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace the stored image and delete the old object", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockImages := new(MockImageStore)
		uc := usecase.NewProfileUsecase(mockRepo, mockImages)

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{
			ID:             "u1",
			ProfileImage:   "https://img/old.jpg",
			ProfileImageID: "profile_images/old",
		}, nil)
		mockImages.On("Upload", ctx, "profile_images", []byte("img"), "image/png").
			Return("https://img/new.jpg", "profile_images/new", nil)
		mockRepo.On("UpdateImage", ctx, "u1", "https://img/new.jpg", "profile_images/new").Return(nil)
		mockImages.On("Delete", ctx, "profile_images/old").Return(nil)

		url, err := uc.UploadProfileImage(ctx, "u1", []byte("img"), "image/png")
		assert.NoError(t, err)
		assert.Equal(t, "https://img/new.jpg", url)
		mockImages.AssertExpectations(t)
	})

	t.Run("Removal without an image is a 400", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(mockRepo, new(MockImageStore))

		mockRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.RemoveProfileImage(ctx, "u1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})
}
