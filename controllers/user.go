package controllers

import (
	"net/http"

	"favorites-restful/auth"
	"favorites-restful/models"
	"favorites-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

type UserController struct {
	userService services.UserService
	issuer      *auth.TokenIssuer
	errors      errorMapper
}

func NewUserController(userService services.UserService, issuer *auth.TokenIssuer, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, issuer: issuer, errors: errorMapper{logger: logger}}
}

// UserResponse documents the serialized user shape.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// UserWithFavoritesResponse documents User.SerializeWithFavorites.
type UserWithFavoritesResponse struct {
	UserResponse
	FavoriteCharacters []CharacterResponse `json:"favorite_characters"`
	FavoriteLocations  []LocationResponse  `json:"favorite_locations"`
}

// WebService builds the /users routes.
func (ctl *UserController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/users").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	tags := []string{"users"}
	authFilter := ctl.issuer.AuthFilter()

	ws.Route(ws.POST("").To(ctl.createUserHandler).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.CreateUserInput{}).
		Returns(http.StatusCreated, "User created", UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", MessageResponse{}).
		Returns(http.StatusConflict, "Email already exists", MessageResponse{}))

	ws.Route(ws.GET("").To(ctl.listUsersHandler).
		Doc("List users with pagination").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("page_size", "Users per page (default 10)").DataType("integer").DefaultValue("10")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Users listed", PageResponse{}))

	ws.Route(ws.GET("/{user-id}").To(ctl.getUserHandler).
		Doc("Get user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "User found", UserResponse{}).
		Returns(http.StatusNotFound, "User not found", MessageResponse{}))

	ws.Route(ws.GET("/{user-id}/favorites").Filter(authFilter).To(ctl.getUserFavoritesHandler).
		Doc("Get own user together with favorite characters and locations").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "User found", UserWithFavoritesResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", MessageResponse{}).
		Returns(http.StatusForbidden, "Forbidden", MessageResponse{}).
		Returns(http.StatusNotFound, "User not found", MessageResponse{}))

	ws.Route(ws.PUT("/{user-id}").Filter(authFilter).To(ctl.updateUserHandler).
		Doc("Update own user").
		Param(ws.PathParameter("user-id", "Identifier of the user to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.UpdateUserInput{}).
		Returns(http.StatusOK, "User updated", UserResponse{}).
		Returns(http.StatusUnauthorized, "Unauthorized", MessageResponse{}).
		Returns(http.StatusForbidden, "Forbidden", MessageResponse{}).
		Returns(http.StatusConflict, "Email conflict", MessageResponse{}))

	ws.Route(ws.DELETE("/{user-id}").Filter(authFilter).To(ctl.deleteUserHandler).
		Doc("Delete own user").
		Param(ws.PathParameter("user-id", "Identifier of the user to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusNoContent, "User deleted", nil).
		Returns(http.StatusForbidden, "Forbidden", MessageResponse{}).
		Returns(http.StatusNotFound, "User not found", MessageResponse{}))

	favorite := func(method, kind, param string, handler restful.RouteFunction) {
		rb := ws.Method(method).Path("/{user-id}/favorites/" + kind + "/{" + param + "}").
			Filter(authFilter).To(handler).
			Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
			Param(ws.PathParameter(param, "Identifier of the favorite target").DataType("integer")).
			Metadata(restfulspec.KeyOpenAPITags, []string{"favorites"}).
			Returns(http.StatusNoContent, "Done", nil).
			Returns(http.StatusForbidden, "Forbidden", MessageResponse{}).
			Returns(http.StatusNotFound, "User or target not found", MessageResponse{})
		if method == http.MethodPost {
			rb.Doc("Add " + kind + " favorite (idempotent)")
		} else {
			rb.Doc("Remove " + kind + " favorite")
		}
		ws.Route(rb)
	}
	favorite(http.MethodPost, "characters", "character-id", ctl.addFavoriteCharacterHandler)
	favorite(http.MethodDelete, "characters", "character-id", ctl.removeFavoriteCharacterHandler)
	favorite(http.MethodPost, "locations", "location-id", ctl.addFavoriteLocationHandler)
	favorite(http.MethodDelete, "locations", "location-id", ctl.removeFavoriteLocationHandler)

	return ws
}

// createUserHandler (Handles POST /users)
func (ctl *UserController) createUserHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := ctl.userService.CreateUser(input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusCreated, user.Serialize())
}

// listUsersHandler (Handles GET /users)
func (ctl *UserController) listUsersHandler(request *restful.Request, response *restful.Response) {
	page, pageSize := paging(request)

	users, total, err := ctl.userService.ListUsers(page, pageSize)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}

	writeJSON(response, http.StatusOK, PageResponse{Items: serializeUsers(users), Total: total, Page: page, PageSize: pageSize})
}

// getUserHandler (Handles GET /users/{user-id})
func (ctl *UserController) getUserHandler(request *restful.Request, response *restful.Response) {
	userID, ok := pathID(request, response, "user-id")
	if !ok {
		return
	}
	user, err := ctl.userService.GetUser(userID)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, user.Serialize())
}

// getUserFavoritesHandler (Handles GET /users/{user-id}/favorites)
func (ctl *UserController) getUserFavoritesHandler(request *restful.Request, response *restful.Response) {
	userID, ok := pathID(request, response, "user-id")
	if !ok {
		return
	}
	requestingUserID, ok := requestingUser(request, response)
	if !ok {
		return
	}
	// Same owner-only rule as the gRPC GetUserWithFavorites
	if requestingUserID != userID {
		writeMessage(response, http.StatusForbidden, "favorites are only visible to their owner")
		return
	}
	user, err := ctl.userService.GetUserWithFavorites(userID)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, user.SerializeWithFavorites())
}

// updateUserHandler (Handles PUT /users/{user-id})
func (ctl *UserController) updateUserHandler(request *restful.Request, response *restful.Response) {
	userID, ok := pathID(request, response, "user-id")
	if !ok {
		return
	}
	requestingUserID, ok := requestingUser(request, response)
	if !ok {
		return
	}

	input := new(services.UpdateUserInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := ctl.userService.UpdateUser(userID, requestingUserID, input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, user.Serialize())
}

// deleteUserHandler (Handles DELETE /users/{user-id})
func (ctl *UserController) deleteUserHandler(request *restful.Request, response *restful.Response) {
	userID, ok := pathID(request, response, "user-id")
	if !ok {
		return
	}
	requestingUserID, ok := requestingUser(request, response)
	if !ok {
		return
	}

	if err := ctl.userService.DeleteUser(userID, requestingUserID); err != nil {
		ctl.errors.handle(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

type favoriteFunc func(userID, requestingUserID, targetID uint) error

// favoriteHandler wraps the four favorite mutations, which share their
// parameter handling and response codes.
func (ctl *UserController) favoriteHandler(request *restful.Request, response *restful.Response, param string, fn favoriteFunc) {
	userID, ok := pathID(request, response, "user-id")
	if !ok {
		return
	}
	targetID, ok := pathID(request, response, param)
	if !ok {
		return
	}
	requestingUserID, ok := requestingUser(request, response)
	if !ok {
		return
	}

	if err := fn(userID, requestingUserID, targetID); err != nil {
		ctl.errors.handle(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

func (ctl *UserController) addFavoriteCharacterHandler(request *restful.Request, response *restful.Response) {
	ctl.favoriteHandler(request, response, "character-id", ctl.userService.AddFavoriteCharacter)
}

func (ctl *UserController) removeFavoriteCharacterHandler(request *restful.Request, response *restful.Response) {
	ctl.favoriteHandler(request, response, "character-id", ctl.userService.RemoveFavoriteCharacter)
}

func (ctl *UserController) addFavoriteLocationHandler(request *restful.Request, response *restful.Response) {
	ctl.favoriteHandler(request, response, "location-id", ctl.userService.AddFavoriteLocation)
}

func (ctl *UserController) removeFavoriteLocationHandler(request *restful.Request, response *restful.Response) {
	ctl.favoriteHandler(request, response, "location-id", ctl.userService.RemoveFavoriteLocation)
}

// serializeUsers is shared by the favorited-by routes.
func serializeUsers(users []models.User) []map[string]any {
	out := make([]map[string]any, len(users))
	for i := range users {
		out[i] = users[i].Serialize()
	}
	return out
}
