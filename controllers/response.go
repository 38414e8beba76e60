package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"favorites-restful/auth"
	"favorites-restful/repositories"
	"favorites-restful/services"

	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

// PageResponse wraps one page of serialized records.
type PageResponse struct {
	Items    []map[string]any `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

func writeJSON(response *restful.Response, status int, value any) {
	response.PrettyPrint(false)
	_ = response.WriteHeaderAndJson(status, value, restful.MIME_JSON)
}

func writeMessage(response *restful.Response, status int, message string) {
	writeJSON(response, status, MessageResponse{Message: message})
}

// pathID parses a numeric path parameter, answering 400 when it is malformed.
func pathID(request *restful.Request, response *restful.Response, name string) (uint, bool) {
	id, err := strconv.ParseUint(request.PathParameter(name), 10, 32)
	if err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}

// paging reads page and page_size, defaulting to 1 and 10 and capping
// page_size at repositories.MaxPageSize.
func paging(request *restful.Request) (int, int) {
	page, _ := strconv.Atoi(request.QueryParameter("page"))
	pageSize, _ := strconv.Atoi(request.QueryParameter("page_size"))
	return repositories.NormalizePage(page, pageSize)
}

func requestingUser(request *restful.Request, response *restful.Response) (uint, bool) {
	userID, ok := auth.RequestingUserID(request)
	if !ok {
		writeMessage(response, http.StatusUnauthorized, "Unauthorized: Cannot identify requesting user")
	}
	return userID, ok
}

// errorMapper translates service errors to HTTP responses.
type errorMapper struct {
	logger *zap.Logger
}

func (m errorMapper) handle(response *restful.Response, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeMessage(response, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(response, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		writeMessage(response, http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		writeMessage(response, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrDuplicate):
		writeMessage(response, http.StatusConflict, err.Error())
	default:
		m.logger.Error("Unhandled service error", zap.Error(err))
		writeMessage(response, http.StatusInternalServerError, "An internal error occurred")
	}
}
