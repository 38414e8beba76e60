package controllers

import (
	"net/http"

	"favorites-restful/auth"
	"favorites-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// LoginCredentials defines the structure of the login request
type LoginCredentials struct {
	Email    string `json:"email" description:"Email for login"`
	Password string `json:"password" description:"Password for login"`
}

// LoginResponse defines the structure of the login response
type LoginResponse struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

type AuthController struct {
	userService services.UserService
	issuer      *auth.TokenIssuer
	errors      errorMapper
}

func NewAuthController(userService services.UserService, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthController {
	return &AuthController{userService: userService, issuer: issuer, errors: errorMapper{logger: logger}}
}

func (ctl *AuthController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/login").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.POST("").To(ctl.loginHandler).
		Doc("Exchange credentials for a bearer token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(LoginCredentials{}).
		Returns(http.StatusOK, "Logged in", LoginResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", MessageResponse{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", MessageResponse{}))

	return ws
}

// loginHandler handles POST /login
func (ctl *AuthController) loginHandler(request *restful.Request, response *restful.Response) {
	creds := new(LoginCredentials)
	if err := request.ReadEntity(creds); err != nil {
		writeMessage(response, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeMessage(response, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ctl.userService.Authenticate(creds.Email, creds.Password)
	if err != nil {
		ctl.errors.handle(response, err)
		return
	}

	token, err := ctl.issuer.GenerateToken(user)
	if err != nil {
		ctl.errors.logger.Error("Could not generate token", zap.Uint("user_id", user.ID), zap.Error(err))
		writeMessage(response, http.StatusInternalServerError, "Could not generate token")
		return
	}
	writeJSON(response, http.StatusOK, LoginResponse{Token: token, User: user.Serialize()})
}
