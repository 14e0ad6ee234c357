package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kindbridge/kindbridge-backend/api/middleware"
	"github.com/kindbridge/kindbridge-backend/api/responses"
	"github.com/kindbridge/kindbridge-backend/api/validators"
	"github.com/kindbridge/kindbridge-backend/internal/children"
	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
	"github.com/kindbridge/kindbridge-backend/pkg/logger"
)

// Free-text bio is capped before it reaches validation.
const maxBioLen = 2000

// OrphanageChildren lists the caller's child records.
func OrphanageChildren(svc children.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "children service unavailable"))
			return
		}

		items, err := svc.List(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// OrphanageChildCreate registers a child from a multipart form with an
// optional image part.
func OrphanageChildCreate(svc children.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "children service unavailable"))
			return
		}

		if err := validators.ParseMultipartForm(r, maxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := children.CreateChildDTO{
			FirstName:   r.FormValue("first_name"),
			LastName:    r.FormValue("last_name"),
			DateOfBirth: r.FormValue("date_of_birth"),
			Gender:      r.FormValue("gender"),
			Bio:         validators.SanitizeString(r.FormValue("bio"), maxBioLen),
			Needs:       validators.FormList(r.FormValue("needs")),
			Interests:   validators.FormList(r.FormValue("interests")),
		}
		if err := validators.ValidateStruct(&payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var photo *children.PhotoUpload
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			photo = &children.PhotoUpload{
				ContentType: header.Header.Get("Content-Type"),
				Data:        file,
			}
		} else if err != http.ErrMissingFile {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading image part"))
			return
		}

		dto, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), payload, photo)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "child_id", dto.ID.String()), "child.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// OrphanageChildUpdate patches a child owned by the caller's orphanage.
func OrphanageChildUpdate(svc children.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "children service unavailable"))
			return
		}

		childID, err := parseChildID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload children.UpdateChildDTO
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, middleware.UserIDFromContext(ctx), childID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// OrphanageChildDelete removes a child owned by the caller's orphanage.
func OrphanageChildDelete(svc children.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "children service unavailable"))
			return
		}

		childID, err := parseChildID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, middleware.UserIDFromContext(ctx), childID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseChildID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "childId")
	childID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"childId": "must be a valid id"})
	}
	return childID, nil
}
