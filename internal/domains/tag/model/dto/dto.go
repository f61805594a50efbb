package dto

import (
	"cowork/internal/domains/tag/model"
)

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *TagResponse) FromModel(model model.Tag) {
	r.ID = model.ID
	r.Name = model.Name
}

type GetTagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

func (r *GetTagsResponse) FromModels(models []model.Tag) {
	r.Tags = make([]TagResponse, len(models))
	for i, mod := range models {
		r.Tags[i].FromModel(mod)
	}
}
