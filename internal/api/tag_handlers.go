package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags, sorted by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Adds a tag to the global catalog; the name is slugified",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{name}/recipes",
		Summary:     "Get recipes by tag",
		Description: "Returns recipes carrying the given tag, newest first",
		Tags:        []string{"Tags"},
	}, s.handleGetTagRecipes)
}

// TagResponse contains a single tag in API responses.
type TagResponse struct {
	ID   string `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// TagListResponse contains all tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags sorted by name"`
}

// TagListOutput wraps the tag list for Huma.
type TagListOutput struct {
	Body TagListResponse
}

// TagNameInput identifies a tag by name.
type TagNameInput struct {
	Name string `path:"name" doc:"Tag name"`
}

// CreateTagRequest contains the tag creation payload.
type CreateTagRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"64" doc:"Tag name"`
}

// CreateTagInput wraps the create request for Huma.
type CreateTagInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Body          CreateTagRequest
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body TagResponse
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	resp := TagListResponse{Tags: make([]TagResponse, 0, len(tags))}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	return &TagListOutput{Body: resp}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.CreateTag(ctx, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: TagResponse{ID: tag.ID, Name: tag.Name}}, nil
}

func (s *Server) handleGetTagRecipes(ctx context.Context, input *TagNameInput) (*RecipeListOutput, error) {
	views, err := s.services.Tag.GetRecipesByTag(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	return &RecipeListOutput{Body: RecipeListResponse{Recipes: views}}, nil
}
