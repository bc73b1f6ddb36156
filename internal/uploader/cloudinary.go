package uploader

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

// Cloudinary uploads images through the Cloudinary signed upload REST API.
type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	uploadURL string
	http      *http.Client
	now       func() time.Time
}

func NewCloudinary(cfg config.CloudinaryConfig) *Cloudinary {
	return &Cloudinary{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		uploadURL: cfg.UploadURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

func (c *Cloudinary) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (*Result, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	// Signature covers the signed params in alphabetical order,
	// concatenated with the API secret.
	toSign := fmt.Sprintf("folder=%s&timestamp=%s%s", folder, timestamp, c.apiSecret)
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	_ = mw.WriteField("api_key", c.apiKey)
	_ = mw.WriteField("timestamp", timestamp)
	_ = mw.WriteField("folder", folder)
	_ = mw.WriteField("signature", signature)
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.uploadURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: cloudinary status %d: %s", ErrUpload, resp.StatusCode, msg)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return &Result{URL: out.SecureURL, FileID: out.PublicID}, nil
}
