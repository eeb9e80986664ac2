package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

const (
	assetsCacheControl    = "public, max-age=604800, stale-while-revalidate=86400"
	versionedCacheControl = "public, max-age=31536000, immutable"
)

// AssetsWithCache serves fsys and applies Cache-Control, Vary and ETag
// handling. Requests must already have the mount prefix stripped. A "v"
// query parameter marks a fingerprinted URL that may be cached forever.
func AssetsWithCache(fsys fs.FS) http.Handler {
	etags := map[string]string{}
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if et, err := fileETag(fsys, path); err == nil {
			etags["/"+path] = et
		}
		return nil
	})
	files := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", versionedCacheControl)
		} else {
			w.Header().Set("Cache-Control", assetsCacheControl)
		}
		if et := etags["/"+strings.TrimPrefix(r.URL.Path, "/")]; et != "" {
			w.Header().Set("ETag", et)
			if etagMatches(r.Header.Get("If-None-Match"), et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

// ETag returns the precomputed tag for an asset path, for cache-busting
// query strings in templates.
func ETag(fsys fs.FS, path string) string {
	et, err := fileETag(fsys, strings.TrimPrefix(path, "/"))
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(et, "W/"), `"`)[:12]
}

func etagMatches(header, etag string) bool {
	if strings.TrimSpace(header) == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "*" || trimmed == etag {
			return true
		}
	}
	return false
}

func fileETag(fsys fs.FS, path string) (string, error) {
	f, err := fsys.Open(path)
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
