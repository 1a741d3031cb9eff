package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/yusufkaya/experience_marketplace/configs"
	"github.com/yusufkaya/experience_marketplace/utils"
)

const uploadFolder = "experience_marketplace"

type UploadHandler struct {
	Cfg *configs.Config
}

func NewUploadHandler(cfg *configs.Config) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

// GenerateUploadSignature creates a secure signature so clients can upload
// experience images and guide profile media straight to Cloudinary.
func (h *UploadHandler) GenerateUploadSignature(c *fiber.Ctx) error {
	cld, err := cloudinary.NewFromURL(h.Cfg.CloudinaryURL)
	if err != nil {
		return utils.UnexpectedError("Failed to prepare upload", err)
	}

	parsedURL, err := url.Parse(h.Cfg.CloudinaryURL)
	if err != nil {
		return utils.UnexpectedError("Failed to prepare upload", err)
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: uploadFolder,
	})
	if err != nil {
		return utils.UnexpectedError("Failed to prepare upload", err)
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return utils.UnexpectedError("Failed to prepare upload", err)
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    cld.Config.Cloud.APIKey,
		"folder":    uploadFolder,
	})
}
