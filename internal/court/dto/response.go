package dto

import "github.com/adr1ancosmin/padel-pal/internal/court/models"

type CourtResponse struct {
	ID        int64  `json:"id"`
	ClubName  string `json:"clubName"`
	CourtName string `json:"courtName"`
	Indoor    bool   `json:"indoor"`
}

func ToCourtResponse(c *models.Court) CourtResponse {
	return CourtResponse{
		ID:        c.ID,
		ClubName:  c.ClubName,
		CourtName: c.CourtName,
		Indoor:    c.Indoor,
	}
}

func ToCourtResponses(courts []models.Court) []CourtResponse {
	resp := make([]CourtResponse, len(courts))
	for i := range courts {
		resp[i] = ToCourtResponse(&courts[i])
	}
	return resp
}
