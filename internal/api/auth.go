package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"recruitdesk/internal/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Access  string            `json:"access"`
	Refresh string            `json:"refresh"`
	User    model.UserProfile `json:"user"`
}

type RegisterRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	FirstName         string `json:"first_name" validate:"required"`
	LastName          string `json:"last_name" validate:"required"`
	Gender            string `json:"gender" validate:"required"`
	JobTitle          string `json:"job_title" validate:"required"`
	Company           string `json:"company" validate:"required"`
	CompanyWebsite    string `json:"company_website" validate:"omitempty,url"`
	HiringDescription string `json:"hiring_description" validate:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterData carries the issued tokens plus the created profile fields,
// which the backend flattens alongside tokens.
type RegisterData struct {
	Tokens TokenPair `json:"tokens"`
	model.UserProfile
}

type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    RegisterData `json:"data"`
}

var requestValidator = validator.New()

// Validate rejects an obviously incomplete registration before it goes on
// the wire. Field keys in the returned ValidationError use JSON names.
func (r RegisterRequest) Validate() error {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe.StructField())] = append(fields[jsonFieldName(fe.StructField())], registerFieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "JobTitle":
		return "job_title"
	case "CompanyWebsite":
		return "company_website"
	case "HiringDescription":
		return "hiring_description"
	default:
		// single-word fields lowercase cleanly
		return lowerFirst(structField)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

func registerFieldMessage(fe interface{ Tag() string }) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "min":
		return "too short"
	case "url":
		return "must be a valid URL"
	default:
		return "is required"
	}
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, req, &out); err != nil {
		// credential rejections come back as 400 from some deployments;
		// either way a failed login is an auth failure to the caller.
		if verr, ok := err.(*ValidationError); ok {
			return LoginResponse{}, &AuthError{Message: verr.Error()}
		}
		return LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return RegisterResponse{}, err
	}
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, req, &out); err != nil {
		return RegisterResponse{}, err
	}
	return out, nil
}
