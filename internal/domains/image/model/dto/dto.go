package dto

import (
	"mime/multipart"

	"cowork/internal/domains/image/model"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type UploadImageRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader multipart.FileHeader  `json:"-" validate:"mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

func (u *UploadImageRequest) ToModel(officeID, url, user string) model.Image {
	return model.Image{
		ID:       uuid.NewString(),
		OfficeID: officeID,
		URL:      url,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ImageResponse struct {
	ID       string `json:"id"`
	OfficeID string `json:"office_id"`
	URL      string `json:"url"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.Image) {
	r.ID = model.ID
	r.OfficeID = model.OfficeID
	r.URL = model.URL
	r.Metadata.FromModel(model.Metadata)
}

type GetImagesResponse struct {
	Images []ImageResponse `json:"images"`
}

func (r *GetImagesResponse) FromModels(models []model.Image) {
	r.Images = make([]ImageResponse, len(models))
	for i, mod := range models {
		r.Images[i].FromModel(mod)
	}
}
