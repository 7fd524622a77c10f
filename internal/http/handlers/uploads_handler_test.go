package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Suyash1602/airBNB-clone/internal/http/handlers"
	"github.com/Suyash1602/airBNB-clone/internal/storage"
)

func setupUploadsServer(t *testing.T) *httptest.Server {
	t.Helper()

	photos, err := storage.NewPhotoStore(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("failed to create photo store: %v", err)
	}
	h := handlers.NewUploadsHandler(photos, 3)

	r := chi.NewRouter()
	r.Post("/upload-by-link", h.UploadByLink)
	r.Post("/upload", h.Upload)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestUploadByLink(t *testing.T) {
	image := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake png data"))
	}))
	defer image.Close()

	server := setupUploadsServer(t)
	client := newClient(t)

	resp := postJSON(t, client, server.URL+"/upload-by-link", map[string]string{
		"link": image.URL + "/photo.png",
	}, http.StatusOK)

	var name string
	decodeBody(t, resp, &name)
	if name == "" {
		t.Error("expected a stored file name")
	}
}

func TestUploadByLinkRequiresLink(t *testing.T) {
	server := setupUploadsServer(t)
	client := newClient(t)

	resp := postJSON(t, client, server.URL+"/upload-by-link", map[string]string{}, http.StatusBadRequest)
	resp.Body.Close()
}

func TestUploadMultipart(t *testing.T) {
	server := setupUploadsServer(t)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for _, name := range []string{"one.jpg", "two.png"} {
		part, err := mp.CreateFormFile("photos", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("fake image data"))
	}
	mp.Close()

	resp, err := http.Post(server.URL+"/upload", mp.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 stored names, got %d", len(names))
	}
}

func TestUploadTooManyPhotos(t *testing.T) {
	server := setupUploadsServer(t)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for i := 0; i < 4; i++ {
		part, err := mp.CreateFormFile("photos", "photo.jpg")
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("fake image data"))
	}
	mp.Close()

	resp, err := http.Post(server.URL+"/upload", mp.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for too many photos, got %d", resp.StatusCode)
	}
}

func TestUploadRejectsNonImageName(t *testing.T) {
	server := setupUploadsServer(t)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	part, err := mp.CreateFormFile("photos", "script.sh")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("#!/bin/sh"))
	mp.Close()

	resp, err := http.Post(server.URL+"/upload", mp.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for non-image upload, got %d", resp.StatusCode)
	}
}
