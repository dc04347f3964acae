package rest

import (
	"time"
	"versus-web/internal/core/domain"
)

// PropertyCardResponse - карточка объекта для виджетов
type PropertyCardResponse struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Type      string   `json:"type,omitempty"`
	City      string   `json:"city,omitempty"`
	Status    string   `json:"status,omitempty"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	PriceText string   `json:"price_text"`
	Bedrooms  int      `json:"bedrooms,omitempty"`
	Bathrooms int      `json:"bathrooms,omitempty"`
	Area      float64  `json:"area,omitempty"`
	Image     string   `json:"image,omitempty"`
	Images    []string `json:"images,omitempty"`
	URL       string   `json:"url"`

	PublishedAt time.Time `json:"published_at"`
}

type PaginatedPropertiesResponse struct {
	Data       []PropertyCardResponse `json:"data"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
	Page       int                    `json:"page"`
	Query      string                 `json:"query"`
	Pagination PaginationResponse     `json:"pagination"`
}

type PageMarkerResponse struct {
	Page     int    `json:"page,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
	URL      string `json:"url,omitempty"`
	Current  bool   `json:"current,omitempty"`
}

type PaginationResponse struct {
	ShouldPaginate bool                 `json:"should_paginate"`
	Current        int                  `json:"current"`
	Total          int                  `json:"total"`
	Markers        []PageMarkerResponse `json:"markers"`
}

func toPropertyCard(p domain.Property) PropertyCardResponse {
	return PropertyCardResponse{
		Slug:        p.Slug,
		Title:       p.Title,
		Type:        p.Type,
		City:        p.City,
		Status:      p.Status,
		Price:       p.Price,
		Currency:    p.Currency,
		PriceText:   formatPrice(p.Price, p.Currency),
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Image:       p.MainImage(),
		Images:      p.Images,
		URL:         listingPath + "/" + p.Slug,
		PublishedAt: p.PublishedAt,
	}
}

func toPaginationResponse(view paginationView, current, total int) PaginationResponse {
	resp := PaginationResponse{
		ShouldPaginate: view.Show,
		Current:        current,
		Total:          total,
		Markers:        make([]PageMarkerResponse, 0, len(view.Links)),
	}
	for _, link := range view.Links {
		resp.Markers = append(resp.Markers, PageMarkerResponse{
			Page:     link.Page,
			Ellipsis: link.Ellipsis,
			URL:      link.URL,
			Current:  link.Current,
		})
	}
	return resp
}
