package api

import (
	"github.com/raymondchung216/instacook/internal/service"
)

// Services groups the business logic services used by the API server.
// This keeps the NewServer signature manageable and makes test wiring easy.
type Services struct {
	Auth    *service.AuthService
	Feed    *service.FeedService
	Recipe  *service.RecipeService
	Comment *service.CommentService
	Social  *service.SocialService
	Tag     *service.TagService
	Search  *service.SearchService
}
