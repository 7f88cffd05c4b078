package dto

type GenerateNamesRequest struct {
	Theme  string `json:"theme" validate:"required"`
	Gender string `json:"gender" validate:"omitempty,oneof=boy girl neutral"`
	Count  int    `json:"count" validate:"omitempty,min=1,max=25"`
}

type NameCandidateResponse struct {
	Name        string `json:"name"`
	Meaning     string `json:"meaning"`
	Origin      string `json:"origin"`
	Description string `json:"description,omitempty"`
}

type GenerateNamesResponse struct {
	NamesWithMeanings []*NameCandidateResponse `json:"namesWithMeanings"`
}

type NameDescriptionRequest struct {
	Name string `json:"name" validate:"required"`
}

type NameDescriptionResponse struct {
	Description string `json:"description"`
	UsedWiki    bool   `json:"usedWiki"`
}
