package usecase

import (
	"context"
	"sort"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

const (
	homeFeaturedLimit = 6
	homePostsLimit    = 3
)

// Слаги юридических страниц в CMS
const (
	LegalPrivacy = "politica-de-privacidad"
	LegalCookies = "politica-de-cookies"
	LegalTerms   = "terminos-y-condiciones"
)

var legalSlugs = map[string]bool{
	LegalPrivacy: true,
	LegalCookies: true,
	LegalTerms:   true,
}

type GetHomeUseCase struct {
	source port.ContentSourcePort
}

func NewGetHomeUseCase(source port.ContentSourcePort) *GetHomeUseCase {
	return &GetHomeUseCase{source: source}
}

// Execute собирает главную: избранные объекты (или просто последние, если
// избранных нет) и три последние записи блога.
func (uc *GetHomeUseCase) Execute(ctx context.Context) (*domain.HomeContent, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetHome"})

	properties, err := uc.source.ListProperties(ctx, domain.DefaultFilterState(), 1, homeFeaturedLimit*2)
	if err != nil {
		ucLogger.Error("Failed to load properties for home", err, nil)
		return nil, err
	}
	posts, err := uc.source.ListPosts(ctx, 1, homePostsLimit)
	if err != nil {
		ucLogger.Error("Failed to load posts for home", err, nil)
		return nil, err
	}

	if properties == nil {
		properties = &domain.PropertyPage{}
	}
	if posts == nil {
		posts = &domain.PostPage{}
	}

	home := &domain.HomeContent{
		Featured:    pickFeatured(properties.Items, homeFeaturedLimit),
		LatestPosts: posts.Items,
	}
	if len(home.LatestPosts) > homePostsLimit {
		home.LatestPosts = home.LatestPosts[:homePostsLimit]
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{
		"featured": len(home.Featured),
		"posts":    len(home.LatestPosts),
	})
	return home, nil
}

func pickFeatured(items []domain.Property, limit int) []domain.Property {
	featured := make([]domain.Property, 0, limit)
	for _, p := range items {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	if len(featured) == 0 {
		featured = append(featured, items...)
	}
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

type GetTeamUseCase struct {
	source port.ContentSourcePort
}

func NewGetTeamUseCase(source port.ContentSourcePort) *GetTeamUseCase {
	return &GetTeamUseCase{source: source}
}

func (uc *GetTeamUseCase) Execute(ctx context.Context) ([]domain.TeamMember, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetTeam"})

	members, err := uc.source.ListTeam(ctx)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Order < members[j].Order
	})
	return members, nil
}

type GetLegalPageUseCase struct {
	source port.ContentSourcePort
}

func NewGetLegalPageUseCase(source port.ContentSourcePort) *GetLegalPageUseCase {
	return &GetLegalPageUseCase{source: source}
}

func (uc *GetLegalPageUseCase) Execute(ctx context.Context, slug string) (*domain.LegalPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetLegalPage",
		"slug":     slug,
	})

	if !legalSlugs[slug] {
		ucLogger.Warn("Requested page is not a legal page", nil)
		return nil, domain.ErrNotFound
	}

	page, err := uc.source.GetPage(ctx, slug)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}
	if page == nil {
		return nil, domain.ErrNotFound
	}
	return page, nil
}
