package controllers

import (
	"net/http"

	"favorites-restful/auth"
	"favorites-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// CatalogController serves /characters and /locations.
type CatalogController struct {
	catalog services.CatalogService
	issuer  *auth.TokenIssuer
	errors  errorMapper
}

func NewCatalogController(catalog services.CatalogService, issuer *auth.TokenIssuer, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, issuer: issuer, errors: errorMapper{logger: logger}}
}

type CharacterResponse struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Species *string `json:"species"`
	Status  *string `json:"status"`
	Gender  *string `json:"gender"`
	Image   *string `json:"image"`
}

type LocationResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Type      *string `json:"type"`
	Dimension *string `json:"dimension"`
}

func (ctl *CatalogController) CharactersWebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/characters").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	tags := []string{"characters"}
	id := ws.PathParameter("character-id", "Identifier of the character").DataType("integer")

	ws.Route(ws.GET("").To(ctl.listCharacters).
		Doc("List characters").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer")).
		Param(ws.QueryParameter("page_size", "Characters per page (default 10)").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Characters listed", PageResponse{}))

	ws.Route(ws.GET("/{character-id}").To(ctl.getCharacter).
		Doc("Get character by ID").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Character found", CharacterResponse{}).
		Returns(http.StatusNotFound, "Character not found", MessageResponse{}))

	ws.Route(ws.GET("/{character-id}/favorited-by").To(ctl.characterFavoritedBy).
		Doc("Users that favorited the character").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Users listed", []UserResponse{}).
		Returns(http.StatusNotFound, "Character not found", MessageResponse{}))

	ws.Route(ws.POST("").Filter(ctl.issuer.AuthFilter()).To(ctl.createCharacter).
		Doc("Create a character").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.CharacterInput{}).
		Returns(http.StatusCreated, "Character created", CharacterResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", MessageResponse{}).
		Returns(http.StatusConflict, "Character already exists", MessageResponse{}))

	ws.Route(ws.PUT("/{character-id}").Filter(ctl.issuer.AuthFilter()).To(ctl.updateCharacter).
		Doc("Replace a character").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.CharacterInput{}).
		Returns(http.StatusOK, "Character updated", CharacterResponse{}).
		Returns(http.StatusNotFound, "Character not found", MessageResponse{}))

	ws.Route(ws.DELETE("/{character-id}").Filter(ctl.issuer.AuthFilter()).To(ctl.deleteCharacter).
		Doc("Delete a character and its favorite rows").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusNoContent, "Character deleted", nil).
		Returns(http.StatusNotFound, "Character not found", MessageResponse{}))

	return ws
}

func (ctl *CatalogController) LocationsWebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/locations").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	tags := []string{"locations"}
	id := ws.PathParameter("location-id", "Identifier of the location").DataType("integer")

	ws.Route(ws.GET("").To(ctl.listLocations).
		Doc("List locations").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer")).
		Param(ws.QueryParameter("page_size", "Locations per page (default 10)").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Locations listed", PageResponse{}))

	ws.Route(ws.GET("/{location-id}").To(ctl.getLocation).
		Doc("Get location by ID").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Location found", LocationResponse{}).
		Returns(http.StatusNotFound, "Location not found", MessageResponse{}))

	ws.Route(ws.GET("/{location-id}/favorited-by").To(ctl.locationFavoritedBy).
		Doc("Users that favorited the location").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusOK, "Users listed", []UserResponse{}).
		Returns(http.StatusNotFound, "Location not found", MessageResponse{}))

	ws.Route(ws.POST("").Filter(ctl.issuer.AuthFilter()).To(ctl.createLocation).
		Doc("Create a location").
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.LocationInput{}).
		Returns(http.StatusCreated, "Location created", LocationResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", MessageResponse{}))

	ws.Route(ws.PUT("/{location-id}").Filter(ctl.issuer.AuthFilter()).To(ctl.updateLocation).
		Doc("Replace a location").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Reads(services.LocationInput{}).
		Returns(http.StatusOK, "Location updated", LocationResponse{}).
		Returns(http.StatusNotFound, "Location not found", MessageResponse{}))

	ws.Route(ws.DELETE("/{location-id}").Filter(ctl.issuer.AuthFilter()).To(ctl.deleteLocation).
		Doc("Delete a location and its favorite rows").Param(id).
		Metadata(restfulspec.KeyOpenAPITags, tags).
		Returns(http.StatusNoContent, "Location deleted", nil).
		Returns(http.StatusNotFound, "Location not found", MessageResponse{}))

	return ws
}

// --- Characters ---

func (ctl *CatalogController) listCharacters(request *restful.Request, response *restful.Response) {
	page, pageSize := paging(request)
	characters, total, err := ctl.catalog.ListCharacters(page, pageSize)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	items := make([]map[string]any, len(characters))
	for i := range characters {
		items[i] = characters[i].Serialize()
	}
	writeJSON(response, http.StatusOK, PageResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (ctl *CatalogController) getCharacter(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "character-id")
	if !ok {
		return
	}
	character, err := ctl.catalog.GetCharacter(id)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, character.Serialize())
}

func (ctl *CatalogController) characterFavoritedBy(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "character-id")
	if !ok {
		return
	}
	users, err := ctl.catalog.CharacterFavoritedBy(id)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, serializeUsers(users))
}

func (ctl *CatalogController) createCharacter(request *restful.Request, response *restful.Response) {
	input := new(services.CharacterInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	character, err := ctl.catalog.CreateCharacter(input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusCreated, character.Serialize())
}

func (ctl *CatalogController) updateCharacter(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "character-id")
	if !ok {
		return
	}
	input := new(services.CharacterInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	character, err := ctl.catalog.UpdateCharacter(id, input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, character.Serialize())
}

func (ctl *CatalogController) deleteCharacter(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "character-id")
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteCharacter(id); err != nil {
		ctl.errors.handle(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

// --- Locations ---

func (ctl *CatalogController) listLocations(request *restful.Request, response *restful.Response) {
	page, pageSize := paging(request)
	locations, total, err := ctl.catalog.ListLocations(page, pageSize)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	items := make([]map[string]any, len(locations))
	for i := range locations {
		items[i] = locations[i].Serialize()
	}
	writeJSON(response, http.StatusOK, PageResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (ctl *CatalogController) getLocation(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "location-id")
	if !ok {
		return
	}
	location, err := ctl.catalog.GetLocation(id)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, location.Serialize())
}

func (ctl *CatalogController) locationFavoritedBy(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "location-id")
	if !ok {
		return
	}
	users, err := ctl.catalog.LocationFavoritedBy(id)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, serializeUsers(users))
}

func (ctl *CatalogController) createLocation(request *restful.Request, response *restful.Response) {
	input := new(services.LocationInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	location, err := ctl.catalog.CreateLocation(input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusCreated, location.Serialize())
}

func (ctl *CatalogController) updateLocation(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "location-id")
	if !ok {
		return
	}
	input := new(services.LocationInput)
	if err := request.ReadEntity(input); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	location, err := ctl.catalog.UpdateLocation(id, input)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}
	writeJSON(response, http.StatusOK, location.Serialize())
}

func (ctl *CatalogController) deleteLocation(request *restful.Request, response *restful.Response) {
	id, ok := pathID(request, response, "location-id")
	if !ok {
		return
	}
	if err := ctl.catalog.DeleteLocation(id); err != nil {
		ctl.errors.handle(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}
