package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/otel/mocks"
	s3Mocks "cowork/infras/s3/mocks"
	imageMocks "cowork/internal/domains/image/mocks"
	"cowork/internal/domains/image/model"
	"cowork/internal/domains/image/model/dto"
	"cowork/internal/domains/image/service"
	officeMocks "cowork/internal/domains/office/mocks"
	officeModel "cowork/internal/domains/office/model"
	"cowork/shared/constant"
	"cowork/shared/failure"
)

const (
	testUserID   = "test-user-id"
	testOfficeID = "test-office-id"
	testImageID  = "test-image-id"
)

func hostedOffice() officeModel.Office {
	return officeModel.Office{
		ID:             testOfficeID,
		UserID:         testUserID,
		Title:          "Downtown Loft",
		ApprovalStatus: officeModel.ApprovalApproved,
	}
}

func officeContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestImageService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := imageMocks.NewMockImage(ctrl)
	mockOfficeRepo := officeMocks.NewMockOffice(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockOfficeRepo, mockS3, cfg, mockOtel)

	req := dto.UploadImageRequest{
		FileHeader: multipart.FileHeader{Filename: "photo.jpg"},
	}

	tests := []struct {
		name      string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successful upload",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/offices/test-office-id/photo.jpg", nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "office not found",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(officeModel.Office{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "non-owner cannot upload",
			userID: "someone-else",
			role:   constant.RoleUser,
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "storage error",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 unavailable"))
			},
			wantErr: true,
		},
		{
			name:   "repository error",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/offices/test-office-id/photo.jpg", nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Upload(officeContext(tt.userID, tt.role), testOfficeID, req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testOfficeID, res.OfficeID)
				assert.NotEmpty(t, res.URL)
			}
		})
	}
}

func TestImageService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := imageMocks.NewMockImage(ctrl)
	mockOfficeRepo := officeMocks.NewMockOffice(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockOfficeRepo, mockS3, cfg, mockOtel)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Image{
			{ID: "image-1", OfficeID: testOfficeID},
			{ID: "image-2", OfficeID: testOfficeID},
		}, nil)

	res, err := svc.GetAll(context.Background(), testOfficeID)

	assert.NoError(t, err)
	assert.Len(t, res.Images, 2)
}

func TestImageService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := imageMocks.NewMockImage(ctrl)
	mockOfficeRepo := officeMocks.NewMockOffice(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockOfficeRepo, mockS3, cfg, mockOtel)

	mockS3.EXPECT().GetObjectNameFromURL(gomock.Any(), gomock.Any()).Return("offices/test-office-id/photo.jpg").AnyTimes()
	mockS3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ownedImage := model.Image{
		ID:       testImageID,
		OfficeID: testOfficeID,
		URL:      "https://cdn.example.com/offices/test-office-id/photo.jpg",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedImage, nil)
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "image belongs to another office",
			setupMock: func() {
				image := ownedImage
				image.OfficeID = "another-office-id"

				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(image, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "cannot delete the only image",
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedImage, nil)
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cannot delete the featured image",
			setupMock: func() {
				office := hostedOffice()
				featured := testImageID
				office.FeaturedImageID = &featured

				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(office, nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedImage, nil)
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockOfficeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hostedOffice(), nil)
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedImage, nil)
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(officeContext(testUserID, constant.RoleUser), testOfficeID, testImageID)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
