package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/api/middleware"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/uploader"
	"github.com/craftfolio/craftfolio-server/internal/utils"
)

// Phone numbers, when present, must be exactly 10 digits.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ProfileHandler owns the profile document lifecycle and image upload.
type ProfileHandler struct {
	profiles ProfileStore
	uploads  uploader.Uploader
	folder   string
}

func NewProfileHandler(profiles ProfileStore, uploads uploader.Uploader, folder string) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		uploads:  uploads,
		folder:   folder,
	}
}

type profileInput struct {
	Bio        string `json:"bio"`
	Phone      string `json:"phone"`
	Github     string `json:"github"`
	Linkedin   string `json:"linkedin"`
	Degree     string `json:"degree"`
	Branch     string `json:"branch"`
	University string `json:"university"`
	CGPA       string `json:"cgpa"`
	Year       string `json:"year"`

	// Pre-uploaded image URL (split-service variant uploads separately).
	ProfileImage string `json:"profileImage"`

	Skills      []models.Skill     `json:"skills"`
	Projects    []models.Project   `json:"projects"`
	Education10 []models.Education `json:"education10"`
	Education12 []models.Education `json:"education12"`
}

// GetOwn godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/profile [get]
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	profile, err := h.profiles.ProfileByUserID(r.Context(), identity.UserID)
	if err != nil {
		h.respondProfileErr(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile fetched successfully",
		Data:    map[string]any{"profile": profile},
	})
}

// GET /api/profile/{userId} — public read path.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid user id",
		})
		return
	}

	profile, err := h.profiles.ProfileByUserID(r.Context(), userID)
	if err != nil {
		h.respondProfileErr(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile fetched successfully",
		Data:    map[string]any{"profile": profile},
	})
}

// Save godoc
// @Summary Create or update the caller's profile
// @Description Upsert keyed by user identity. Multipart form with an optional profileImage file, or a JSON document.
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/profile [post]
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var (
		input profileInput
		image *imageFile
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, img, err := h.readMultipart(w, r)
		if err != nil {
			return // response already written
		}
		input, image = parsed, img
	} else {
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}
	}

	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Phone number must be exactly 10 digits",
		})
		return
	}

	// The provider call waits until the rest of the submission is valid,
	// so a rejected request never leaves an orphaned image behind.
	var uploaded *uploader.Result
	if image != nil {
		res, err := h.uploads.Upload(r.Context(), image.data, image.filename, image.contentType, h.folder)
		if err != nil {
			utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
				Success: false,
				Message: "Image upload failed",
			})
			return
		}
		uploaded = res
	}

	// Lazy create on first submission, update in place after.
	profile, err := h.profiles.ProfileByUserID(r.Context(), identity.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			h.respondProfileErr(w, err)
			return
		}
		profile = &models.Profile{ID: uuid.New(), UserID: identity.UserID}
	}

	profile.Bio = input.Bio
	profile.Phone = input.Phone
	profile.Github = input.Github
	profile.Linkedin = input.Linkedin
	profile.Degree = input.Degree
	profile.Branch = input.Branch
	profile.University = input.University
	profile.CGPA = input.CGPA
	profile.Year = input.Year
	profile.Skills = input.Skills
	profile.Projects = input.Projects
	profile.Education10 = input.Education10
	profile.Education12 = input.Education12

	// A previously stored image survives updates that carry no new one.
	switch {
	case uploaded != nil:
		profile.ImageURL = &uploaded.URL
		profile.ImageFileID = uploaded.FileID
	case input.ProfileImage != "":
		profile.ImageURL = &input.ProfileImage
	}

	if err := h.profiles.SaveProfile(r.Context(), profile); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to save profile",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile saved successfully",
		Data:    map[string]any{"profile": profile},
	})
}

// imageFile is a parsed profile image awaiting upload.
type imageFile struct {
	data        []byte
	filename    string
	contentType string
}

// readMultipart parses the classic profile form and reads the optional
// image, running the shared guards but deferring the provider upload to
// the caller. On error it writes the response itself and returns a
// non-nil error.
func (h *ProfileHandler) readMultipart(w http.ResponseWriter, r *http.Request) (profileInput, *imageFile, error) {
	var input profileInput

	if err := r.ParseMultipartForm(uploader.MaxImageSize + 1<<20); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid profile form",
		})
		return input, nil, err
	}

	input.Bio = r.PostFormValue("bio")
	input.Phone = r.PostFormValue("phone")
	input.Github = r.PostFormValue("github")
	input.Linkedin = r.PostFormValue("linkedin")
	input.Degree = r.PostFormValue("degree")
	input.Branch = r.PostFormValue("branch")
	input.University = r.PostFormValue("university")
	input.CGPA = r.PostFormValue("cgpa")
	input.Year = r.PostFormValue("year")

	// Skill names arrive as comma-separated lists; the legacy form split
	// them into frontend/backend/tools groups, preserved in that order.
	for _, field := range []string{"skills", "frontend", "backend", "tools"} {
		for _, name := range strings.Split(r.PostFormValue(field), ",") {
			if name = strings.TrimSpace(name); name != "" {
				input.Skills = append(input.Skills, models.Skill{Name: name})
			}
		}
	}

	if title := r.PostFormValue("project_title"); title != "" {
		input.Projects = append(input.Projects, models.Project{
			Title:       title,
			Description: r.PostFormValue("project_description"),
			Link:        r.PostFormValue("project_link"),
		})
	}

	input.Education10 = educationFromForm(r, "10")
	input.Education12 = educationFromForm(r, "12")

	file, header, err := r.FormFile("profileImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, nil
		}
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid profile image",
		})
		return input, nil, err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := uploader.CheckImage(header.Size, contentType); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: err.Error(),
		})
		return input, nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Failed to read profile image",
		})
		return input, nil, err
	}

	return input, &imageFile{
		data:        data,
		filename:    header.Filename,
		contentType: contentType,
	}, nil
}

func educationFromForm(r *http.Request, grade string) []models.Education {
	institute := r.PostFormValue("edu_institute" + grade)
	year := r.PostFormValue("edu_year" + grade)
	score := r.PostFormValue("edu_score" + grade)
	if institute == "" && year == "" && score == "" {
		return nil
	}
	return []models.Education{{Institute: institute, Year: year, Score: score}}
}

// Delete godoc
// @Summary Delete the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/profile [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	if err := h.profiles.DeleteProfile(r.Context(), identity.UserID); err != nil {
		h.respondProfileErr(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile deleted successfully",
	})
}

// GET /api/profile/preview — the stored document joined with the
// caller's identity, ready for a client to render or export.
func (h *ProfileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	profile, err := h.profiles.ProfileByUserID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
				Success: false,
				Message: "Please fill the profile first",
			})
			return
		}
		h.respondProfileErr(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Preview generated successfully",
		Data: map[string]any{
			"user": map[string]string{
				"id":       identity.UserID.String(),
				"fullname": identity.Fullname,
				"email":    identity.Email,
			},
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) respondProfileErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Profile not found",
		})
		return
	}
	utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
		Success: false,
		Message: "Failed to fetch profile",
	})
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}
