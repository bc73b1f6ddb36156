package uploader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

func TestCloudinaryUpload(t *testing.T) {
	t.Parallel()

	fixed := time.Unix(1700000000, 0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		require.Equal(t, "key-1", r.FormValue("api_key"))
		require.Equal(t, "portfolio", r.FormValue("folder"))
		require.Equal(t, "1700000000", r.FormValue("timestamp"))

		digest := sha1.Sum([]byte("folder=portfolio&timestamp=1700000000sec-1"))
		require.Equal(t, hex.EncodeToString(digest[:]), r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "avatar.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/portfolio/abc.png","public_id":"portfolio/abc"}`)
	}))
	defer srv.Close()

	c := NewCloudinary(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key-1",
		APISecret: "sec-1",
		UploadURL: srv.URL,
	})
	c.now = func() time.Time { return fixed }

	res, err := c.Upload(context.Background(), []byte("png"), "avatar.png", "image/png", "portfolio")
	require.NoError(t, err)
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/portfolio/abc.png", res.URL)
	require.Equal(t, "portfolio/abc", res.FileID)
}

func TestCloudinaryUpload_ProviderFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid signature"}}`)
	}))
	defer srv.Close()

	c := NewCloudinary(config.CloudinaryConfig{CloudName: "demo", UploadURL: srv.URL})
	_, err := c.Upload(context.Background(), []byte("png"), "a.png", "image/png", "portfolio")
	require.ErrorIs(t, err, ErrUpload)
}

func TestImageKitUpload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "priv-1", user)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		require.Equal(t, "portfolio", r.FormValue("folder"))
		require.Equal(t, "true", r.FormValue("useUniqueFileName"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"url":"https://ik.imagekit.io/demo/portfolio/abc.png","fileId":"file-abc"}`)
	}))
	defer srv.Close()

	k := NewImageKit(config.ImageKitConfig{PrivateKey: "priv-1", UploadURL: srv.URL})

	res, err := k.Upload(context.Background(), []byte("png"), "avatar.png", "image/png", "portfolio")
	require.NoError(t, err)
	require.Equal(t, "https://ik.imagekit.io/demo/portfolio/abc.png", res.URL)
	require.Equal(t, "file-abc", res.FileID)
}

func TestImageKitUpload_ProviderFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	k := NewImageKit(config.ImageKitConfig{PrivateKey: "priv-1", UploadURL: srv.URL})
	_, err := k.Upload(context.Background(), []byte("png"), "a.png", "image/png", "portfolio")
	require.ErrorIs(t, err, ErrUpload)
}
