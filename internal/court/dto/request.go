package dto

type CreateCourtRequest struct {
	ClubName  string `json:"clubName"`
	CourtName string `json:"courtName"`
	Indoor    bool   `json:"indoor"`
}
