package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID    string       `json:"id"`
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	res, err := s.deps.Users.Register(c.Request.Context(), req)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	s.requestLogger(c).Info(c.Request.Context(), "user registered", "user_id", res.User.ID)
	c.JSON(http.StatusCreated, authResponse{ID: res.User.ID, User: res.User, Token: res.Token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	res, err := s.deps.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{ID: res.User.ID, User: res.User, Token: res.Token})
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
		return
	}

	user, err := s.deps.Users.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		s.respondWithError(c, common.ErrorNoFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	defer f.Close()

	url, err := s.deps.Images.Upload(c.Request.Context(), f)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageURL": url})
}
