package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PlaceholderImage is served for product images that have no file yet, such as
// derived gallery thumbnails.
const PlaceholderImage = "/images/placeholder.svg"

// AssetsWithCache wraps a file server over dir and applies Cache-Control, Vary
// and ETag handling. Requests for missing files under /images/ are answered
// with the placeholder image instead of a 404.
func AssetsWithCache(dir string) http.Handler {
	// precompute ETags for files under dir
	etags := map[string]string{}
	_ = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		et, _ := fileETag(p)
		if rel, err := filepath.Rel(dir, p); err == nil {
			etags["/"+filepath.ToSlash(rel)] = et
		}
		return nil
	})
	root := os.DirFS(dir)
	files := http.FileServer(http.FS(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := path.Clean("/" + strings.TrimPrefix(r.URL.Path, "/assets"))
		if _, ok := etags[urlPath]; !ok && isImageRequest(urlPath) && exists(root, PlaceholderImage) {
			r2 := r.Clone(r.Context())
			r2.URL.Path = PlaceholderImage
			urlPath = PlaceholderImage
			r = r2
		}
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
		if et := etags[urlPath]; et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func isImageRequest(p string) bool {
	if !strings.HasPrefix(p, "/images/") {
		return false
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".svg":
		return true
	}
	return false
}

func exists(root fs.FS, p string) bool {
	_, err := fs.Stat(root, strings.TrimPrefix(p, "/"))
	return err == nil
}

func fileETag(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}
