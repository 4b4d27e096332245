package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"tocsmith/internal/htmldoc"
	"tocsmith/internal/source"
	"tocsmith/internal/toc"
)

// handleBuildTOC extracts headings from an uploaded document and returns the
// numbered entries plus the nested TOC tree as JSON.
func (s *Server) handleBuildTOC(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	src, err := source.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	heads, err := src.Extract(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "extract: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	opts := s.requestOptions(r)
	res, err := toc.Build(heads, opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if res == nil {
		// No includable headings: nothing to return beyond the fact itself.
		json.NewEncoder(w).Encode(map[string]any{"filename": filename, "empty": true})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"entries":  res.Entries,
		"toc":      res.Tree,
	})
}

// handleRewriteHTML numbers headings in an uploaded HTML document and attaches
// the TOC list under the configured container, returning the rewritten HTML.
func (s *Server) handleRewriteHTML(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".html" && ext != ".htm" {
		jsonError(w, fmt.Sprintf("html rewrite requires an html file, got %s", ext), http.StatusBadRequest)
		return
	}

	opts := s.requestOptions(r)
	out, err := htmldoc.Rewrite(bytes.NewReader(data), opts)
	if err != nil {
		switch {
		case errors.Is(err, htmldoc.ErrNoContainer), errors.Is(err, htmldoc.ErrNoContext):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, toc.ErrBadLevel):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, "rewrite: "+err.Error(), http.StatusUnprocessableEntity)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

// readUpload reads the "file" part of a multipart upload, enforcing size
// limits and sanitizing the filename. On failure it writes the error response
// and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	return data, filename, true
}

// requestOptions builds TOC options from server defaults plus per-request form
// overrides: exclude, numerate, auto_ids, context, container.
func (s *Server) requestOptions(r *http.Request) toc.Options {
	opts := toc.DefaultOptions()

	opts.Exclude = make(map[int]bool, len(s.cfg.ExcludeLevels))
	for _, lvl := range s.cfg.ExcludeLevels {
		opts.Exclude[lvl] = true
	}
	opts.Container = s.cfg.Container

	if v := r.FormValue("exclude"); v != "" {
		exclude := make(map[int]bool)
		for _, part := range strings.Split(v, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				exclude[n] = true
			}
		}
		opts.Exclude = exclude
	}
	if v := r.FormValue("numerate"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Numerate = b
		}
	}
	if v := r.FormValue("auto_ids"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.AutoID = b
		}
	}
	if v := r.FormValue("context"); v != "" {
		opts.Context = v
	}
	if v := r.FormValue("container"); v != "" {
		opts.Container = v
	}
	return opts
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
