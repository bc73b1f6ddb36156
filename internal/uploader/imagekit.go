package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

// ImageKit uploads images through the ImageKit upload REST API,
// authenticated with the private key via basic auth.
type ImageKit struct {
	privateKey string
	uploadURL  string
	http       *http.Client
	now        func() time.Time
}

func NewImageKit(cfg config.ImageKitConfig) *ImageKit {
	return &ImageKit{
		privateKey: cfg.PrivateKey,
		uploadURL:  cfg.UploadURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (k *ImageKit) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (*Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	_ = mw.WriteField("fileName", strconv.FormatInt(k.now().UnixMilli(), 10)+"_"+filename)
	_ = mw.WriteField("folder", folder)
	_ = mw.WriteField("useUniqueFileName", "true")
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.uploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(k.privateKey, "")

	resp, err := k.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: imagekit status %d: %s", ErrUpload, resp.StatusCode, msg)
	}

	var out struct {
		URL    string `json:"url"`
		FileID string `json:"fileId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return &Result{URL: out.URL, FileID: out.FileID}, nil
}
