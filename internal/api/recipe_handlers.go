package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/service"
	"github.com/raymondchung216/instacook/internal/store"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes",
		Summary:     "Create recipe",
		Description: "Creates a recipe owned by the authenticated user. Unknown tags are created on the fly.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns all recipes, newest first",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a single recipe with its tags, comments, and likers",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Updates a recipe. Only the contributor may update it.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Deletes a recipe and its comments. Only the contributor may delete it.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleRecipeLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/{id}/like",
		Summary:     "Toggle like",
		Description: "Likes the recipe, or removes the like if already present",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleLike)

	huma.Register(s.api, huma.Operation{
		OperationID: "addComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/{id}/comments",
		Summary:     "Add comment",
		Description: "Adds a comment to a recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}/recipes",
		Summary:     "Get a user's recipes",
		Description: "Returns recipes contributed by the given user, newest first",
		Tags:        []string{"Recipes"},
	}, s.handleGetUserRecipes)
}

// === DTOs ===

// CreateRecipeRequest is the request body for creating a recipe.
type CreateRecipeRequest struct {
	Title     string     `json:"title" doc:"Recipe title"`
	Content   string     `json:"content" doc:"Recipe body"`
	Tags      []string   `json:"tags,omitempty" doc:"Tag names"`
	CreatedAt *time.Time `json:"created_at,omitempty" doc:"Creation time override (RFC 3339); defaults to now"`
}

// CreateRecipeInput wraps the create request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Body          CreateRecipeRequest
}

// UpdateRecipeRequest is the request body for updating a recipe.
// Omitted fields are left unchanged.
type UpdateRecipeRequest struct {
	Title     *string    `json:"title,omitempty" doc:"New title"`
	Content   *string    `json:"content,omitempty" doc:"New body"`
	Tags      *[]string  `json:"tags,omitempty" doc:"Replacement tag names"`
	CreatedAt *time.Time `json:"created_at,omitempty" doc:"New creation time (RFC 3339)"`
}

// UpdateRecipeInput wraps the update request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          UpdateRecipeRequest
}

// RecipeIDInput identifies a recipe by path parameter.
type RecipeIDInput struct {
	ID string `path:"id" doc:"Recipe ID"`
}

// AuthedRecipeIDInput identifies a recipe and carries the auth header.
type AuthedRecipeIDInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// CommentRequest is the request body for adding a comment.
type CommentRequest struct {
	Content string `json:"content" doc:"Comment text"`
}

// CommentInput wraps the comment request for Huma.
type CommentInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          CommentRequest
}

// UsernameInput identifies a user by path parameter.
type UsernameInput struct {
	Username string `path:"username" doc:"Username"`
}

// RecipeOutput wraps a single recipe view for Huma.
type RecipeOutput struct {
	Body dto.RecipeView
}

// RecipeListResponse contains a list of recipes.
type RecipeListResponse struct {
	Recipes []*dto.RecipeView `json:"recipes" doc:"Recipes, newest first"`
}

// RecipeListOutput wraps a recipe list for Huma.
type RecipeListOutput struct {
	Body RecipeListResponse
}

// CommentOutput wraps a created comment for Huma.
type CommentOutput struct {
	Body dto.CommentView
}

// === Handlers ===

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.CreateRecipe(ctx, user.ID, service.CreateRecipeInput{
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		Tags:      input.Body.Tags,
		CreatedAt: input.Body.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*RecipeListOutput, error) {
	views, err := s.services.Recipe.ListRecipes(ctx, store.RecipeFilter{})
	if err != nil {
		return nil, err
	}

	return &RecipeListOutput{Body: RecipeListResponse{Recipes: views}}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeOutput, error) {
	view, err := s.services.Recipe.GetRecipe(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.UpdateRecipe(ctx, user.ID, input.ID, service.UpdateRecipeInput{
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		Tags:      input.Body.Tags,
		CreatedAt: input.Body.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *AuthedRecipeIDInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.DeleteRecipe(ctx, user.ID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleToggleLike(ctx context.Context, input *AuthedRecipeIDInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.ToggleLike(ctx, user.Username, input.ID); err != nil {
		return nil, err
	}

	// No state in the response: clients re-read the recipe for the count.
	return &MessageOutput{Body: MessageResponse{Message: "Like toggled"}}, nil
}

func (s *Server) handleAddComment(ctx context.Context, input *CommentInput) (*CommentOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comment.AddComment(ctx, user.Username, input.ID, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: *comment}, nil
}

func (s *Server) handleGetUserRecipes(ctx context.Context, input *UsernameInput) (*RecipeListOutput, error) {
	views, err := s.services.Recipe.GetRecipesByContributor(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &RecipeListOutput{Body: RecipeListResponse{Recipes: views}}, nil
}
