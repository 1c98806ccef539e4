package dto

type CreatedDTO struct {
	ID uint64 `json:"id"`
}

type ShortTeamDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortUserDTO struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}
