package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ProfileDTO struct {
	ID              uint64   `json:"id"`
	Login           string   `json:"login"`
	Fio             string   `json:"fio"`
	Phone           string   `json:"phone"`
	IsPrimaryAdmin  bool     `json:"is_primary_admin"`
	AllowedStatuses []string `json:"allowed_statuses"`
}
