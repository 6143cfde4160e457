package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	ImageURL  string     `json:"image_url"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type recipeResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Country      string         `json:"country"`
	Rating       float64        `json:"rating"`
	Ingredients  []string       `json:"ingredients"`
	Procedure    []string       `json:"procedure"`
	PeopleServed int            `json:"people_served"`
	Category     model.Category `json:"category"`
	CookingTime  string         `json:"cooking_time"`
	ImageURL     string         `json:"image_url"`
	VideoLink    string         `json:"video_link"`
	UserID       uuid.UUID      `json:"user_id"`
	User         string         `json:"user"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func newRecipeResponse(r model.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Country:      r.Country,
		Rating:       r.Rating,
		Ingredients:  nonNil(r.Ingredients),
		Procedure:    nonNil(r.Procedure),
		PeopleServed: r.PeopleServed,
		Category:     r.Category,
		CookingTime:  r.CookingTime,
		ImageURL:     r.ImageURL,
		VideoLink:    r.VideoLink,
		UserID:       r.OwnerID,
		User:         r.OwnerUsername,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type favoriteRecipeResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Country      string         `json:"country"`
	Rating       float64        `json:"rating"`
	Ingredients  string         `json:"ingredients"`
	Procedure    string         `json:"procedure"`
	PeopleServed int            `json:"people_served"`
	Category     model.Category `json:"category"`
	CookingTime  string         `json:"cooking_time"`
	ImageURL     string         `json:"image_url"`
	VideoLink    string         `json:"video_link"`
	UserID       uuid.UUID      `json:"user_id"`
	User         string         `json:"user"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func newFavoriteRecipeResponse(f model.FavoriteRecipe) favoriteRecipeResponse {
	return favoriteRecipeResponse{
		ID:           f.ID,
		Title:        f.Title,
		Country:      f.Country,
		Rating:       f.Rating,
		Ingredients:  f.Ingredients,
		Procedure:    f.Procedure,
		PeopleServed: f.PeopleServed,
		Category:     f.Category,
		CookingTime:  f.CookingTime,
		ImageURL:     f.ImageURL,
		VideoLink:    f.VideoLink,
		UserID:       f.OwnerID,
		User:         f.OwnerUsername,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

type pageResponse[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

func newPageResponse[S, T any](p model.Page[S], convert func(S) T) pageResponse[T] {
	items := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, convert(item))
	}
	return pageResponse[T]{
		Items:   items,
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Pages:   p.Pages,
	}
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
