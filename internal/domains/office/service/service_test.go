package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/otel/mocks"
	s3Mocks "cowork/infras/s3/mocks"
	imageMocks "cowork/internal/domains/image/mocks"
	officeMocks "cowork/internal/domains/office/mocks"
	"cowork/internal/domains/office/model"
	"cowork/internal/domains/office/model/dto"
	"cowork/internal/domains/office/service"
	reservationMocks "cowork/internal/domains/reservation/mocks"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
)

const (
	testUserID   = "test-user-id"
	testOfficeID = "test-office-id"
	testTagID    = "5b1c2d3e-4f50-4a61-b273-8495a6b7c8d9"
)

type officeServiceMocks struct {
	repo            *officeMocks.MockOffice
	officeTagRepo   *officeMocks.MockOfficeTag
	reservationRepo *reservationMocks.MockReservation
	imageRepo       *imageMocks.MockImage
	s3              *s3Mocks.MockS3
	cache           *cacheMocks.MockRedisCache
}

func newOfficeService(ctrl *gomock.Controller) (service.Office, officeServiceMocks) {
	m := officeServiceMocks{
		repo:            officeMocks.NewMockOffice(ctrl),
		officeTagRepo:   officeMocks.NewMockOfficeTag(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		imageRepo:       imageMocks.NewMockImage(ctrl),
		s3:              s3Mocks.NewMockS3(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.officeTagRepo, m.reservationRepo, m.imageRepo, m.s3, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func ownedOffice(userID string) model.Office {
	return model.Office{
		ID:             testOfficeID,
		UserID:         userID,
		Title:          "Downtown Loft",
		PricePerDay:    1000,
		ApprovalStatus: model.ApprovalApproved,
	}
}

func TestOfficeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newOfficeService(ctrl)

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.CreateOfficeRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateOfficeRequest{
				Title:       "Downtown Loft",
				Description: "Bright corner office",
				PricePerDay: 1000,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "successful creation with tags",
			req: dto.CreateOfficeRequest{
				Title:       "Downtown Loft",
				Description: "Bright corner office",
				PricePerDay: 1000,
				Tags:        []string{testTagID},
			},
			setupMock: func() {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				m.officeTagRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateOfficeRequest{
				Title:       "Downtown Loft",
				Description: "Bright corner office",
				PricePerDay: 1000,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "tag attach error",
			req: dto.CreateOfficeRequest{
				Title:       "Downtown Loft",
				Description: "Bright corner office",
				PricePerDay: 1000,
				Tags:        []string{testTagID},
			},
			setupMock: func() {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				m.officeTagRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUserID, res.UserID)
				assert.Equal(t, model.ApprovalPending, res.ApprovalStatus)
			}
		})
	}
}

func TestOfficeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newOfficeService(ctrl)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "approved office is visible to anyone",
			userID: "visitor-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.officeTagRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.OfficeTag{{TagID: testTagID}}, nil)
			},
			wantErr: false,
		},
		{
			name:   "hidden office is visible to its owner",
			userID: testUserID,
			setupMock: func() {
				office := ownedOffice(testUserID)
				office.Hidden = true

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(office, nil)
				m.officeTagRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantErr: false,
		},
		{
			name:   "hidden office is not found for visitors",
			userID: "visitor-id",
			setupMock: func() {
				office := ownedOffice(testUserID)
				office.Hidden = true

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(office, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "pending office is not found for visitors",
			userID: "visitor-id",
			setupMock: func() {
				office := ownedOffice(testUserID)
				office.ApprovalStatus = model.ApprovalPending

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(office, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "office not found",
			userID: "visitor-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Office{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "repository error",
			userID: "visitor-id",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Office{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			res, err := svc.Get(ctx, testOfficeID)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testOfficeID, res.ID)
			}
		})
	}
}

func TestOfficeService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newOfficeService(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)
	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Office{ownedOffice(testUserID)}, nil)
	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Offices, 1)
}

func TestOfficeService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newOfficeService(ctrl)

	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		userID    string
		role      string
		req       dto.UpdateOfficeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner updates the title",
			userID: testUserID,
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{Title: "Renovated Loft"},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "price change resets approval",
			userID: testUserID,
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{PricePerDay: 2000},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Cond(func(fields map[string]any) bool {
						return fields[model.FieldApprovalStatus] == model.ApprovalPending
					}), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "admin can update any office",
			userID: "admin-id",
			role:   constant.RoleAdmin,
			req:    dto.UpdateOfficeRequest{Title: "Renovated Loft"},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "replacing tags rewrites the junction rows",
			userID: testUserID,
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{Tags: []string{testTagID}},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				m.officeTagRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
				m.officeTagRepo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "office not found",
			userID: testUserID,
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{Title: "Renovated Loft"},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Office{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "non-owner cannot update",
			userID: "someone-else",
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{Title: "Renovated Loft"},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "repository error",
			userID: testUserID,
			role:   constant.RoleUser,
			req:    dto.UpdateOfficeRequest{Title: "Renovated Loft"},
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			err := svc.Update(ctx, tt.req, testOfficeID)

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

func TestOfficeService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newOfficeService(ctrl)

	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.imageRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner deletes an idle office",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Cond(func(fields map[string]any) bool {
						_, ok := fields[model.FieldDeletedAt]

						return ok
					}), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "active reservations block deletion",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "office not found",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Office{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "non-owner cannot delete",
			userID: "someone-else",
			role:   constant.RoleUser,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "repository error",
			userID: testUserID,
			role:   constant.RoleUser,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedOffice(testUserID), nil)
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			err := svc.Delete(ctx, testOfficeID)

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
