package controllers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterRoutes(t *testing.T) {
	c := setupTestContainer(t)
	_, token := registerAndLogin(t, c, "a@b.com")

	body := map[string]any{"id": 2, "name": "Morty", "species": "Human"}
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, c, http.MethodPost, "/characters", "", body).Code)

	w := doRequest(t, c, http.MethodPost, "/characters", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"Morty","species":"Human","status":null,"gender":null,"image":null}`, w.Body.String())

	assert.Equal(t, http.StatusConflict, doRequest(t, c, http.MethodPost, "/characters", token, body).Code)
	assert.Equal(t, http.StatusBadRequest,
		doRequest(t, c, http.MethodPost, "/characters", token, map[string]any{"species": "Human"}).Code)

	w = doRequest(t, c, http.MethodPut, "/characters/2", token, map[string]any{"name": "Morty Smith", "status": "Alive"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"Morty Smith","species":null,"status":"Alive","gender":null,"image":null}`, w.Body.String())

	w = doRequest(t, c, http.MethodGet, "/characters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusNoContent, doRequest(t, c, http.MethodDelete, "/characters/2", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, c, http.MethodGet, "/characters/2", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, c, http.MethodGet, "/characters/2/favorited-by", "", nil).Code)
}

func TestLocationRoutes(t *testing.T) {
	c := setupTestContainer(t)
	userID, token := registerAndLogin(t, c, "a@b.com")

	w := doRequest(t, c, http.MethodPost, "/locations", token, map[string]any{"id": 1, "name": "Earth", "type": "Planet"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Earth","type":"Planet","dimension":null}`, w.Body.String())

	w = doRequest(t, c, http.MethodGet, "/locations/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusNoContent,
		doRequest(t, c, http.MethodPost, "/users/"+itoa(userID)+"/favorites/locations/1", token, nil).Code)

	w = doRequest(t, c, http.MethodGet, "/locations/1/favorited-by", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.com")

	assert.Equal(t, http.StatusNoContent, doRequest(t, c, http.MethodDelete, "/locations/1", token, nil).Code)

	w = doRequest(t, c, http.MethodGet, "/users/"+itoa(userID)+"/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorite_locations":[]`)
}

func TestOpenAPIAndHealth(t *testing.T) {
	c := setupTestContainer(t)

	w := doRequest(t, c, http.MethodGet, "/apidocs.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/users/{user-id}/favorites")

	w = doRequest(t, c, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
