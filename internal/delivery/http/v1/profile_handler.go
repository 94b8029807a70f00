package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"strings"
	"time"

	"graduate-showcase-backend/internal/delivery/http/response"
	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/pkg/apperror"
	"graduate-showcase-backend/pkg/logger"
	"graduate-showcase-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

const maxUploadBytes = 5 << 20 // 5 MB

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
	uploader  *storage.Uploader
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, uploader *storage.Uploader, uploadLimiter gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC, uploader: uploader}

	profiles := protected.Group("/profiles")
	{
		profiles.GET("/me", handler.GetMyProfile)
		profiles.POST("/me", handler.CreateProfile)
		profiles.PUT("/me", handler.UpdateMyProfile)
		profiles.POST("/me/image", uploadLimiter, handler.UploadImage)
	}
}

// GetMyProfile godoc
// @Summary      Get my graduate profile
// @Description  Returns the profile of the authenticated graduate, including its moderation state
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.GraduateProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.profileUC.GetMyProfile(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Graduate profile", profile)
}

// CreateProfile godoc
// @Summary      Create my graduate profile
// @Description  Creates the profile for the authenticated graduate. New profiles start as pending review.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      domain.GraduateProfile  true  "Profile details"
// @Success      201      {object}  response.Response{data=domain.GraduateProfile}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /profiles/me [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var profile domain.GraduateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	created, err := h.profileUC.CreateProfile(c, &profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created", created)
}

// UpdateMyProfile godoc
// @Summary      Update my graduate profile
// @Description  Updates the profile fields of the authenticated graduate. Moderation state is not affected.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      domain.GraduateProfile  true  "Profile details"
// @Success      200      {object}  response.Response{data=domain.GraduateProfile}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profiles/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var profile domain.GraduateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	updated, err := h.profileUC.UpdateMyProfile(c, &profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", updated)
}

// UploadImage godoc
// @Summary      Upload my profile image
// @Description  Accepts a JPEG, PNG, GIF, or WebP image, compresses it, stores it, and sets it as the profile image.
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /profiles/me/image [post]
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "Image storage is not configured", nil))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}
	if file.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 5 MB limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	contentType := http.DetectContentType(fileBytes)
	if result := storage.ValidateImage(file.Filename, fileBytes, contentType); !result.Valid {
		c.Error(apperror.BadRequest(result.Error))
		return
	}

	finalBytes := fileBytes
	if compressed, compressErr := compressImage(fileBytes, 1200, 80); compressErr != nil {
		logger.Log.Warn("image compression failed, storing original", "error", compressErr)
	} else {
		finalBytes = compressed
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("profiles/%d_%s.jpg", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	url, err := h.uploader.Upload(c, key, finalBytes, contentType)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to store image", err))
		return
	}

	if err := h.profileUC.SetProfileImage(c, url); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile image updated", gin.H{"url": url})
}

// compressImage resizes an image down to maxDimension on its longer
// side and re-encodes it as JPEG.
func compressImage(data []byte, maxDimension int, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFilename reduces a client filename to ASCII alphanumerics,
// underscores, and hyphens so it is safe as an object key segment.
func sanitizeFilename(filename string) string {
	base := filename
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, " ", "_")

	var result strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "image"
	}
	return result.String()
}
