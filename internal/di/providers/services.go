package providers

import (
	"github.com/samber/do/v2"

	"github.com/raymondchung216/instacook/internal/auth"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/logger"
	"github.com/raymondchung216/instacook/internal/service"
)

// ProvideEnricher provides the view enricher shared by read-path services.
func ProvideEnricher(i do.Injector) (*dto.Enricher, error) {
	st := do.MustInvoke[*StoreHandle](i)
	return dto.NewEnricher(st.Store), nil
}

// ProvideSessionService provides the refresh-session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSessionService(st.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewAuthService(st.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideFeedService provides the feed assembly service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	enricher := do.MustInvoke[*dto.Enricher](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewFeedService(st.Store, enricher, log.Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	enricher := do.MustInvoke[*dto.Enricher](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewRecipeService(st.Store, enricher, index.Index, log.Logger), nil
}

// ProvideCommentService provides the comment service.
func ProvideCommentService(i do.Injector) (*service.CommentService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCommentService(st.Store, log.Logger), nil
}

// ProvideSocialService provides the follow-graph service.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSocialService(st.Store, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	enricher := do.MustInvoke[*dto.Enricher](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTagService(st.Store, enricher, log.Logger), nil
}

// ProvideSearchService provides the full-text search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	enricher := do.MustInvoke[*dto.Enricher](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSearchService(st.Store, enricher, index.Index, log.Logger), nil
}
