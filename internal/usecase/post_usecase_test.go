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

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject empty content", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		_, err := uc.CreatePost(ctx, "u1", "", nil, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		mockPosts.AssertNotCalled(t, "Create")
	})

	t.Run("Should attach the uploaded image", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockImages := new(MockImageStore)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), mockImages)

		mockImages.On("Upload", ctx, "post_images", []byte("img"), "image/jpeg").
			Return("https://img/post.jpg", "post_images/key", nil)
		mockPosts.On("Create", ctx, mock.AnythingOfType("*domain.Post")).Return(nil)

		post, err := uc.CreatePost(ctx, "u1", "hello", []byte("img"), "image/jpeg")
		assert.NoError(t, err)
		assert.Equal(t, "https://img/post.jpg", post.ImageURL)
		assert.Equal(t, "post_images/key", post.ImageID)
		assert.Equal(t, "u1", post.Author)
	})
}

func TestListFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Should annotate items for the requesting user", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewPostUsecase(mockPosts, mockUsers, new(MockImageStore))

		mockUsers.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		mockPosts.On("FetchRecentByAuthors", ctx, []string{"u1"}, mock.AnythingOfType("int")).
			Return([]domain.Post{{
				ID:       1,
				Content:  "mine",
				Author:   "u1",
				Likes:    []string{"u1", "u2"},
				Comments: []domain.Comment{{ID: "c1"}},
			}}, nil)
		mockPosts.On("FetchRecentExcluding", ctx, []string{"u1"}, mock.AnythingOfType("int")).
			Return([]domain.Post{{ID: 2, Content: "theirs", Author: "u9", Likes: []string{"u9"}}}, nil)
		mockUsers.On("FetchSummaries", ctx, mock.Anything).Return(map[string]domain.UserSummary{
			"u1": {ID: "u1", Name: "Me"},
			"u9": {ID: "u9", Name: "Stranger"},
		}, nil)

		feed, err := uc.ListFeed(ctx, "u1", 1, 10)
		assert.NoError(t, err)
		assert.Len(t, feed, 2)

		assert.Equal(t, 2, feed[0].LikesCount)
		assert.Equal(t, 1, feed[0].CommentsCount)
		assert.True(t, feed[0].LikedByCurrentUser)
		assert.Equal(t, "Me", feed[0].Author.Name)

		assert.False(t, feed[1].LikedByCurrentUser)
		assert.Equal(t, "Stranger", feed[1].Author.Name)
	})

	t.Run("Pagination past the end yields an empty page", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewPostUsecase(mockPosts, mockUsers, new(MockImageStore))

		mockUsers.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		mockPosts.On("FetchRecentByAuthors", ctx, []string{"u1"}, mock.AnythingOfType("int")).
			Return([]domain.Post{{ID: 1, Author: "u1"}}, nil)
		mockPosts.On("FetchRecentExcluding", ctx, []string{"u1"}, mock.AnythingOfType("int")).
			Return(nil, nil)

		feed, err := uc.ListFeed(ctx, "u1", 5, 10)
		assert.NoError(t, err)
		assert.Empty(t, feed)
	})
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an empty comment", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		err := uc.AddComment(ctx, "u1", 1, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should append with a generated id and timestamp", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		mockPosts.On("AppendComment", ctx, int64(1), mock.AnythingOfType("*domain.Comment")).
			Return(nil).Run(func(args mock.Arguments) {
			comment := args.Get(2).(*domain.Comment)
			assert.NotEmpty(t, comment.ID)
			assert.Equal(t, "u1", comment.Author)
			assert.WithinDuration(t, time.Now(), comment.CreatedAt, time.Minute)
		})

		assert.NoError(t, uc.AddComment(ctx, "u1", 1, "nice post"))
	})

	t.Run("Listing is newest first with resolved authors", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewPostUsecase(mockPosts, mockUsers, new(MockImageStore))

		now := time.Now()
		mockPosts.On("GetByID", ctx, int64(1)).Return(&domain.Post{
			ID: 1,
			Comments: []domain.Comment{
				{ID: "c1", Author: "u1", CreatedAt: now.Add(-time.Hour)},
				{ID: "c2", Author: "u2", CreatedAt: now},
			},
		}, nil)
		mockUsers.On("FetchSummaries", ctx, mock.Anything).Return(map[string]domain.UserSummary{
			"u1": {ID: "u1", Name: "One"},
			"u2": {ID: "u2", Name: "Two"},
		}, nil)

		comments, err := uc.ListComments(ctx, 1, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, "c2", comments[0].ID)
		assert.Equal(t, "Two", comments[0].Author.Name)
	})

	t.Run("Only the comment author can delete it", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		mockPosts.On("GetByID", ctx, int64(1)).Return(&domain.Post{
			ID:       1,
			Comments: []domain.Comment{{ID: "c1", Author: "owner"}},
		}, nil)

		err := uc.DeleteComment(ctx, "intruder", 1, "c1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		mockPosts.AssertNotCalled(t, "SaveComments")
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports the resulting state", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		mockPosts.On("ToggleLike", ctx, int64(1), "u1").Return(true, nil).Once()
		mockPosts.On("ToggleLike", ctx, int64(1), "u1").Return(false, nil).Once()

		liked, err := uc.ToggleLike(ctx, "u1", 1)
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = uc.ToggleLike(ctx, "u1", 1)
		assert.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("Absent post is a 404", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		mockPosts.On("ToggleLike", ctx, int64(9), "u1").Return(false, domain.ErrNotFound)

		_, err := uc.ToggleLike(ctx, "u1", 9)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the author can delete", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), new(MockImageStore))

		mockPosts.On("GetByID", ctx, int64(1)).Return(&domain.Post{ID: 1, Author: "owner"}, nil)

		err := uc.DeletePost(ctx, "intruder", 1)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		mockPosts.AssertNotCalled(t, "Delete")
	})

	t.Run("Deletes the attached image best effort", func(t *testing.T) {
		mockPosts := new(MockPostRepo)
		mockImages := new(MockImageStore)
		uc := usecase.NewPostUsecase(mockPosts, new(MockUserRepo), mockImages)

		mockPosts.On("GetByID", ctx, int64(1)).Return(&domain.Post{
			ID: 1, Author: "u1", ImageID: "post_images/key",
		}, nil)
		mockPosts.On("Delete", ctx, int64(1)).Return(nil)
		mockImages.On("Delete", ctx, "post_images/key").Return(assert.AnError)

		// Image store failure does not surface to the caller.
		assert.NoError(t, uc.DeletePost(ctx, "u1", 1))
		mockImages.AssertExpectations(t)
	})
}
